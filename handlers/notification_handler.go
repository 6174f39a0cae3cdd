package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"wedding-album-backend/database"
	"wedding-album-backend/models"
	"wedding-album-backend/services"
	"wedding-album-backend/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationHandler gère les requêtes de notifications push
type NotificationHandler struct {
	subscriptionRepo *database.SubscriptionRepository
	pushService      *services.WebPushService
}

// NewNotificationHandler crée une nouvelle instance de NotificationHandler
func NewNotificationHandler(db *mongo.Database, pushService *services.WebPushService) *NotificationHandler {
	return &NotificationHandler{
		subscriptionRepo: database.NewSubscriptionRepository(db),
		pushService:      pushService,
	}
}

// GetVAPIDPublicKey retourne la clé publique VAPID
func (h *NotificationHandler) GetVAPIDPublicKey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Méthode non autorisée")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"publicKey": h.pushService.VAPIDPublicKey(),
	})
}

// Subscribe enregistre l'abonnement push d'un visiteur
// Un abonnement déjà connu (même endpoint) n'est pas une erreur :
// le client rafraîchit son abonnement en se désabonnant puis se réabonnant
func (h *NotificationHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Méthode non autorisée")
		return
	}

	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Données invalides")
		return
	}

	if req.Subscription.Endpoint == "" {
		utils.RespondError(w, http.StatusBadRequest, "Endpoint requis")
		return
	}

	// Vérifier si l'abonnement existe déjà
	existing, err := h.subscriptionRepo.FindByEndpoint(req.Subscription.Endpoint)
	if err != nil {
		log.Printf("Erreur lors de la vérification de l'abonnement: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	if existing != nil {
		utils.RespondSuccess(w, "Abonnement déjà existant", nil)
		return
	}

	// Créer l'abonnement
	subscription := &models.PushSubscription{
		ProjectID: req.ProjectID,
		Endpoint:  req.Subscription.Endpoint,
		Keys:      req.Subscription.Keys,
	}

	if err := h.subscriptionRepo.Create(subscription); err != nil {
		log.Printf("Erreur lors de la création de l'abonnement: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur lors de la création de l'abonnement")
		return
	}

	log.Printf("✓ Nouvel abonnement créé pour le projet: %s", req.ProjectID)
	utils.RespondSuccess(w, "Abonnement créé avec succès", subscription)
}

// Unsubscribe supprime l'abonnement push d'un visiteur
func (h *NotificationHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Méthode non autorisée")
		return
	}

	var req struct {
		Endpoint string `json:"endpoint"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Données invalides")
		return
	}

	if err := h.subscriptionRepo.Delete(req.Endpoint); err != nil {
		log.Printf("Erreur lors de la suppression de l'abonnement: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	log.Printf("✓ Abonnement supprimé: %s", req.Endpoint)
	utils.RespondSuccess(w, "Désabonnement réussi", nil)
}

// SendNotification envoie une notification aux abonnés (route admin)
func (h *NotificationHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Méthode non autorisée")
		return
	}

	if !h.pushService.Enabled() {
		utils.RespondError(w, http.StatusServiceUnavailable, "Notifications push non configurées")
		return
	}

	var req models.NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Données invalides")
		return
	}

	// Valeurs par défaut (mêmes que celles du service worker côté client)
	title := req.Title
	if title == "" {
		title = "Wedding Album Update"
	}
	message := req.Message
	if message == "" {
		message = "New update from the wedding album"
	}

	payload := models.NotificationPayload{
		Title:              title,
		Body:               message,
		URL:                req.URL,
		RequireInteraction: req.RequireInteraction,
		Data:               req.Data,
	}

	sent, failed, err := h.pushService.SendToProject(req.ProjectID, payload)
	if err != nil {
		log.Printf("Erreur lors de l'envoi des notifications: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	utils.RespondSuccess(w, "Notifications envoyées", map[string]interface{}{
		"sent":   sent,
		"failed": failed,
		"total":  sent + failed,
	})
}
