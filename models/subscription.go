package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PushSubscription représente un abonnement aux notifications push
type PushSubscription struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProjectID string             `json:"project_id" bson:"project_id"` // Mariage suivi par cet abonné
	Endpoint  string             `json:"endpoint" bson:"endpoint"`
	Keys      PushKeys           `json:"keys" bson:"keys"`
	Created   time.Time          `json:"created_at" bson:"created_at"`
}

// PushKeys contient les clés de chiffrement pour les notifications
type PushKeys struct {
	P256dh string `json:"p256dh" bson:"p256dh"`
	Auth   string `json:"auth" bson:"auth"`
}

// SubscribeRequest représente la requête d'abonnement aux notifications
type SubscribeRequest struct {
	ProjectID    string `json:"project_id"`
	Subscription struct {
		Endpoint string   `json:"endpoint"`
		Keys     PushKeys `json:"keys"`
	} `json:"subscription"`
}

// NotificationRequest représente la requête pour envoyer une notification
type NotificationRequest struct {
	ProjectID          string      `json:"project_id,omitempty"` // Vide = tous les abonnés
	Title              string      `json:"title,omitempty"`
	Message            string      `json:"message,omitempty"`
	URL                string      `json:"url,omitempty"`
	RequireInteraction bool        `json:"require_interaction,omitempty"`
	Data               interface{} `json:"data,omitempty"`
}

// NotificationPayload représente le contenu d'une notification push
// (le format consommé par le service worker côté client)
type NotificationPayload struct {
	Title              string               `json:"title"`
	Body               string               `json:"body"`
	Icon               string               `json:"icon,omitempty"`
	Badge              string               `json:"badge,omitempty"`
	URL                string               `json:"url,omitempty"`
	RequireInteraction bool                 `json:"requireInteraction,omitempty"`
	Actions            []NotificationAction `json:"actions,omitempty"`
	Data               interface{}          `json:"data,omitempty"`
}

// NotificationAction représente une action dans une notification
type NotificationAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}
