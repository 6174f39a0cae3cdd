package database

import (
	"context"
	"fmt"
	"log"
	"time"
	"wedding-album-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProjectRepository gère les opérations sur les projets de mariage
type ProjectRepository struct {
	collection *mongo.Collection
}

// NewProjectRepository crée une nouvelle instance de ProjectRepository
func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{
		collection: db.Collection("projects"),
	}
}

// FindAll retourne tous les projets actifs
func (r *ProjectRepository) FindAll() ([]models.WeddingProject, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var projects []models.WeddingProject
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des projets: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des projets: %w", err)
	}

	return projects, nil
}

// FindByProjectID recherche un projet par son identifiant public
func (r *ProjectRepository) FindByProjectID(projectID string) (*models.WeddingProject, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var project models.WeddingProject
	err := r.collection.FindOne(ctx, bson.M{"project_id": projectID}).Decode(&project)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche du projet: %w", err)
	}

	return &project, nil
}

// FindByDate retourne les projets actifs dont le mariage a lieu à la date donnée (YYYY-MM-DD)
func (r *ProjectRepository) FindByDate(date string) ([]models.WeddingProject, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var projects []models.WeddingProject
	cursor, err := r.collection.Find(ctx, bson.M{"date": date, "is_active": true})
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des projets par date: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des projets: %w", err)
	}

	return projects, nil
}

// IncrementDownloads incrémente le compteur de téléchargements et retourne le nouveau total
func (r *ProjectRepository) IncrementDownloads(projectID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var project models.WeddingProject
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"project_id": projectID},
		bson.M{"$inc": bson.M{"downloads": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&project)

	if err == mongo.ErrNoDocuments {
		return 0, fmt.Errorf("projet %s introuvable", projectID)
	}

	if err != nil {
		return 0, fmt.Errorf("erreur lors de l'incrémentation des téléchargements: %w", err)
	}

	return project.Downloads, nil
}

// SeedIfEmpty insère les projets fournis si la collection est vide
// (données de démonstration au premier démarrage)
func (r *ProjectRepository) SeedIfEmpty(projects []models.WeddingProject) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("erreur lors du comptage des projets: %w", err)
	}

	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(projects))
	for i := range projects {
		projects[i].ID = primitive.NewObjectID()
		docs = append(docs, projects[i])
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("erreur lors de l'insertion des projets de démonstration: %w", err)
	}

	log.Printf("✓ %d projets de démonstration insérés", len(projects))
	return nil
}
