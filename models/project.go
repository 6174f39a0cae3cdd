package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Personne représente un des deux mariés
type Personne struct {
	Name  string `json:"name" bson:"name"`
	Photo string `json:"photo,omitempty" bson:"photo,omitempty"`
}

// Venue représente le lieu de réception
type Venue struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
}

// ScheduleItem représente un moment du programme de la journée
type ScheduleItem struct {
	Time  string `json:"time" bson:"time"`
	Event string `json:"event" bson:"event"`
}

// WeddingProject représente un projet de mariage
type WeddingProject struct {
	ID         primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ProjectID  string             `json:"project_id" bson:"project_id"` // Identifiant public du projet
	Bride      Personne           `json:"bride" bson:"bride"`
	Groom      Personne           `json:"groom" bson:"groom"`
	Date       string             `json:"date" bson:"date"` // Format YYYY-MM-DD
	Venue      Venue              `json:"venue" bson:"venue"`
	Schedule   []ScheduleItem     `json:"schedule,omitempty" bson:"schedule,omitempty"`
	CoverImage string             `json:"cover_image" bson:"cover_image"`
	Password   string             `json:"-" bson:"password"` // Jamais exposé dans les réponses
	ThemeColor string             `json:"theme_color" bson:"theme_color"`
	IsActive   bool               `json:"is_active" bson:"is_active"`
	Downloads  int                `json:"downloads" bson:"downloads"`
}

// WeddingProjectSummary est la vue allégée d'un projet pour l'annuaire
type WeddingProjectSummary struct {
	ProjectID  string `json:"project_id"`
	Bride      string `json:"bride"`
	Groom      string `json:"groom"`
	Date       string `json:"date"`
	Venue      string `json:"venue"`
	CoverImage string `json:"cover_image"`
	ThemeColor string `json:"theme_color"`
	Downloads  int    `json:"downloads"`
}

// Summary retourne la vue annuaire du projet
func (p *WeddingProject) Summary() WeddingProjectSummary {
	return WeddingProjectSummary{
		ProjectID:  p.ProjectID,
		Bride:      p.Bride.Name,
		Groom:      p.Groom.Name,
		Date:       p.Date,
		Venue:      p.Venue.Name,
		CoverImage: p.CoverImage,
		ThemeColor: p.ThemeColor,
		Downloads:  p.Downloads,
	}
}

// CoupleNames retourne les prénoms du couple sous la forme "A & B"
func (p *WeddingProject) CoupleNames() string {
	return p.Bride.Name + " & " + p.Groom.Name
}
