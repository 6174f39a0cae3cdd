package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"wedding-album-backend/database"
	"wedding-album-backend/models"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// Chemins des icônes statiques utilisées par défaut dans les notifications
const (
	DefaultNotificationIcon  = "/icons/192.png"
	DefaultNotificationBadge = "/icons/128.png"
)

// WebPushService gère l'envoi de notifications Web Push (VAPID)
type WebPushService struct {
	subscriptionRepo *database.SubscriptionRepository
	vapidPublicKey   string
	vapidPrivateKey  string
	vapidSubject     string
}

// NewWebPushService crée une nouvelle instance de WebPushService
// Sans clés VAPID configurées, le service démarre en mode désactivé
func NewWebPushService(subscriptionRepo *database.SubscriptionRepository, vapidPublicKey, vapidPrivateKey, vapidSubject string) *WebPushService {
	if vapidPublicKey == "" || vapidPrivateKey == "" {
		log.Println("⚠️  Clés VAPID non configurées - envoi de notifications push désactivé")
	}

	return &WebPushService{
		subscriptionRepo: subscriptionRepo,
		vapidPublicKey:   vapidPublicKey,
		vapidPrivateKey:  vapidPrivateKey,
		vapidSubject:     vapidSubject,
	}
}

// Enabled indique si le service peut envoyer des notifications
func (s *WebPushService) Enabled() bool {
	return s.vapidPublicKey != "" && s.vapidPrivateKey != ""
}

// VAPIDPublicKey retourne la clé publique VAPID (exposée aux clients)
func (s *WebPushService) VAPIDPublicKey() string {
	return s.vapidPublicKey
}

// SendToProject envoie une notification à tous les abonnés d'un projet
// projectID vide = tous les abonnés
func (s *WebPushService) SendToProject(projectID string, payload models.NotificationPayload) (sent int, failed int, err error) {
	if !s.Enabled() {
		return 0, 0, fmt.Errorf("clés VAPID non configurées")
	}

	var subscriptions []models.PushSubscription
	if projectID == "" {
		subscriptions, err = s.subscriptionRepo.FindAll()
	} else {
		subscriptions, err = s.subscriptionRepo.FindByProject(projectID)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("erreur lors de la récupération des abonnements: %w", err)
	}

	if len(subscriptions) == 0 {
		return 0, 0, nil
	}

	// Compléter les valeurs par défaut du payload
	if payload.Icon == "" {
		payload.Icon = DefaultNotificationIcon
	}
	if payload.Badge == "" {
		payload.Badge = DefaultNotificationBadge
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return 0, 0, fmt.Errorf("erreur lors de la création du payload: %w", err)
	}

	for _, sub := range subscriptions {
		if s.sendOne(&sub, payloadBytes) {
			sent++
		} else {
			failed++
		}
	}

	log.Printf("📊 Notifications envoyées: %d/%d (échecs: %d)", sent, len(subscriptions), failed)
	return sent, failed, nil
}

// sendOne envoie une notification à un abonné et nettoie les endpoints expirés
func (s *WebPushService) sendOne(sub *models.PushSubscription, payload []byte) bool {
	wp := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.Keys.P256dh,
			Auth:   sub.Keys.Auth,
		},
	}

	resp, err := webpush.SendNotification(payload, wp, &webpush.Options{
		Subscriber:      s.vapidSubject,
		VAPIDPublicKey:  s.vapidPublicKey,
		VAPIDPrivateKey: s.vapidPrivateKey,
		TTL:             86400, // 24 heures en secondes
		Urgency:         webpush.UrgencyHigh,
	})

	if resp != nil {
		defer resp.Body.Close()
	}

	if err != nil {
		log.Printf("❌ Erreur lors de l'envoi de la notification à %s: %v", sub.Endpoint, err)

		// Si l'endpoint n'est plus valide (410 Gone), supprimer l'abonnement
		if resp != nil && resp.StatusCode == http.StatusGone {
			log.Printf("🗑️  Suppression de l'abonnement invalide: %s", sub.Endpoint)
			_ = s.subscriptionRepo.Delete(sub.Endpoint)
		}
		return false
	}

	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK {
		return true
	}

	if resp.StatusCode == http.StatusGone {
		log.Printf("🗑️  Suppression de l'abonnement invalide: %s", sub.Endpoint)
		_ = s.subscriptionRepo.Delete(sub.Endpoint)
		return false
	}

	log.Printf("⚠️  Réponse inattendue pour %s: %d", sub.Endpoint, resp.StatusCode)
	return false
}
