// Package push gère côté client la permission de notification et
// l'abonnement Web Push : attente du worker, rafraîchissement de
// l'abonnement, décodage de la clé serveur et envoi du descripteur
// au backend. Les API de la plateforme sont injectées.
package push

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
)

// PermissionStatus est l'état de la permission de notification
type PermissionStatus string

const (
	PermissionDefault      PermissionStatus = "default"
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
	PermissionNotSupported PermissionStatus = "not-supported"
	PermissionError        PermissionStatus = "error"
)

// Keys sont les clés de chiffrement du descripteur d'abonnement
type Keys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// Subscription est le descripteur d'abonnement push émis par la plateforme
// Jamais modifié en place : un rafraîchissement le remplace entièrement
type Subscription struct {
	Endpoint string `json:"endpoint"`
	Keys     Keys   `json:"keys"`
}

// SubscribeOptions sont les options de création d'un abonnement
type SubscribeOptions struct {
	UserVisibleOnly      bool
	ApplicationServerKey []byte
}

// NotificationCapability est l'API de notification de la plateforme
type NotificationCapability interface {
	// Supported indique si la plateforme gère les notifications
	Supported() bool
	// RequestPermission attend la décision de l'utilisateur
	RequestPermission(ctx context.Context) (PermissionStatus, error)
}

// PushService est le gestionnaire d'abonnements de la plateforme
type PushService interface {
	// GetSubscription retourne l'abonnement courant, nil s'il n'y en a pas
	GetSubscription(ctx context.Context) (*Subscription, error)
	// Subscribe crée un nouvel abonnement
	Subscribe(ctx context.Context, opts SubscribeOptions) (*Subscription, error)
	// Unsubscribe résilie l'abonnement courant
	Unsubscribe(ctx context.Context, endpoint string) error
}

// WorkerHost expose l'état de préparation du service worker
type WorkerHost interface {
	// Ready suspend jusqu'à ce que le worker soit actif et contrôle la page
	Ready(ctx context.Context) error
}

// SubscriptionHost persiste le descripteur auprès du backend
type SubscriptionHost interface {
	Host(ctx context.Context, projectID string, sub *Subscription) error
}

// Manager coordonne permission, worker et abonnement push
type Manager struct {
	notifications NotificationCapability
	service       PushService
	worker        WorkerHost
	host          SubscriptionHost
}

// NewManager crée un Manager
// host peut être nil : l'abonnement fonctionne alors sans persistance distante
func NewManager(notifications NotificationCapability, service PushService, worker WorkerHost, host SubscriptionHost) *Manager {
	return &Manager{
		notifications: notifications,
		service:       service,
		worker:        worker,
		host:          host,
	}
}

// RequestPermission demande la permission de notification
// Retourne not-supported si la plateforme ne gère pas les notifications,
// error si l'appel plateforme lui-même échoue, sinon la décision telle quelle
func (m *Manager) RequestPermission(ctx context.Context) PermissionStatus {
	if !m.notifications.Supported() {
		log.Println("⚠️  Notifications non supportées par cette plateforme")
		return PermissionNotSupported
	}

	permission, err := m.notifications.RequestPermission(ctx)
	if err != nil {
		log.Printf("❌ Erreur lors de la demande de permission: %v", err)
		return PermissionError
	}

	return permission
}

// Subscribe établit l'abonnement push du projet
// L'appel suspend jusqu'à ce que le worker soit prêt, résilie l'abonnement
// existant avant d'en créer un nouveau (jamais deux abonnements concurrents),
// et retourne nil sur tout échec plutôt que de propager
func (m *Manager) Subscribe(ctx context.Context, projectID, applicationServerKey string) *Subscription {
	// Attendre que le worker soit actif et contrôle la page
	if err := m.worker.Ready(ctx); err != nil {
		log.Printf("❌ Worker jamais prêt: %v", err)
		return nil
	}

	serverKey, err := DecodeApplicationServerKey(applicationServerKey)
	if err != nil {
		log.Printf("❌ Clé serveur invalide: %v", err)
		return nil
	}

	existing, err := m.service.GetSubscription(ctx)
	if err != nil {
		log.Printf("❌ Erreur lors de la lecture de l'abonnement existant: %v", err)
		return nil
	}

	// Rafraîchissement : résilier l'ancien abonnement avant d'en créer un autre
	if existing != nil {
		if err := m.service.Unsubscribe(ctx, existing.Endpoint); err != nil {
			log.Printf("❌ Erreur lors de la résiliation de l'abonnement: %v", err)
			return nil
		}
	}

	subscription, err := m.service.Subscribe(ctx, SubscribeOptions{
		UserVisibleOnly:      true,
		ApplicationServerKey: serverKey,
	})
	if err != nil {
		log.Printf("❌ Erreur lors de la création de l'abonnement: %v", err)
		return nil
	}

	// Persistance distante au mieux : son échec n'invalide pas l'abonnement
	if m.host != nil {
		if err := m.host.Host(ctx, projectID, subscription); err != nil {
			log.Printf("⚠️  Erreur lors de l'envoi de l'abonnement au serveur: %v", err)
		}
	}

	log.Printf("✓ Abonnement push établi: %s", subscription.Endpoint)
	return subscription
}

// DecodeApplicationServerKey décode la clé publique VAPID depuis
// sa forme base64 URL-safe (avec ou sans padding) en octets bruts
func DecodeApplicationServerKey(key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("clé serveur vide")
	}

	trimmed := strings.TrimRight(key, "=")
	raw, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("décodage de la clé serveur: %w", err)
	}
	return raw, nil
}
