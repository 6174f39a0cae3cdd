package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// SlackService gère l'envoi d'alertes Slack
type SlackService struct {
	webhookURL string
	client     *http.Client
}

// SlackMessage représente un message Slack
type SlackMessage struct {
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment représente une pièce jointe Slack
type Attachment struct {
	Color     string  `json:"color,omitempty"`
	Title     string  `json:"title,omitempty"`
	Text      string  `json:"text,omitempty"`
	Fields    []Field `json:"fields,omitempty"`
	Timestamp int64   `json:"ts,omitempty"`
	Footer    string  `json:"footer,omitempty"`
}

// Field représente un champ dans une pièce jointe Slack
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// NewSlackService crée une nouvelle instance de SlackService
func NewSlackService(webhookURL string) *SlackService {
	if webhookURL == "" {
		log.Println("⚠️  Slack webhook URL non configuré - alertes Slack désactivées")
	}

	return &SlackService{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// SendCriticalError envoie une alerte d'erreur serveur sur Slack
func (s *SlackService) SendCriticalError(method, path, statusCode, message, origin, userAgent string) {
	if s.webhookURL == "" {
		return // Service désactivé
	}

	slackMsg := SlackMessage{
		Attachments: []Attachment{
			{
				Color:     "danger",
				Title:     "🚨 Erreur serveur",
				Text:      message,
				Timestamp: time.Now().Unix(),
				Footer:    "Wedding Album - Backend",
				Fields: []Field{
					{Title: "Méthode", Value: method, Short: true},
					{Title: "Status Code", Value: statusCode, Short: true},
					{Title: "Chemin", Value: path, Short: false},
				},
			},
		},
	}

	// Ajouter l'origine si disponible
	if origin != "" {
		slackMsg.Attachments[0].Fields = append(slackMsg.Attachments[0].Fields, Field{
			Title: "Origin",
			Value: origin,
			Short: true,
		})
	}

	// Ajouter le User-Agent si disponible
	if userAgent != "" {
		slackMsg.Attachments[0].Fields = append(slackMsg.Attachments[0].Fields, Field{
			Title: "User-Agent",
			Value: userAgent,
			Short: false,
		})
	}

	if err := s.post(slackMsg); err != nil {
		// Une alerte qui échoue ne doit jamais faire échouer la requête d'origine
		log.Printf("⚠️  Erreur lors de l'envoi à Slack: %v", err)
	}
}

// post sérialise et envoie un message au webhook Slack
func (s *SlackService) post(msg SlackMessage) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("erreur lors de la sérialisation du message Slack: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("erreur lors de la création de la requête: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("erreur lors de l'envoi à Slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("réponse Slack inattendue: %d", resp.StatusCode)
	}

	return nil
}
