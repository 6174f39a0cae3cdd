package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"wedding-album-backend/models"
)

// HTTPSubscriptionHost envoie les descripteurs d'abonnement au backend
// via POST /api/notifications/subscribe
type HTTPSubscriptionHost struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSubscriptionHost crée un host pointant sur l'URL de base du backend
func NewHTTPSubscriptionHost(baseURL string) *HTTPSubscriptionHost {
	return &HTTPSubscriptionHost{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Host envoie le descripteur au backend
func (h *HTTPSubscriptionHost) Host(ctx context.Context, projectID string, sub *Subscription) error {
	var req models.SubscribeRequest
	req.ProjectID = projectID
	req.Subscription.Endpoint = sub.Endpoint
	req.Subscription.Keys = models.PushKeys{
		P256dh: sub.Keys.P256dh,
		Auth:   sub.Keys.Auth,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("erreur lors de la sérialisation de l'abonnement: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/api/notifications/subscribe", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("erreur lors de la création de la requête: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("erreur lors de l'envoi de l'abonnement: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("réponse inattendue du serveur: %d", resp.StatusCode)
	}

	return nil
}
