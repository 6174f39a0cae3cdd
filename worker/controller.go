// Package worker reproduit le cycle de vie du service worker de l'album :
// installation avec activation immédiate, prise de contrôle des clients,
// réception des push et routage des clics de notification.
// Les surfaces de la plateforme (affichage des notifications, fenêtres
// clientes) sont injectées pour être simulables dans les tests.
package worker

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Valeurs par défaut des notifications (identiques côté serveur)
const (
	DefaultTitle = "Wedding Album Update"
	DefaultBody  = "New update from the wedding album"
	DefaultIcon  = "/icons/192.png"
	DefaultBadge = "/icons/128.png"
	DefaultURL   = "/"
)

// Action représente une action proposée dans une notification
type Action struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

// NotificationOptions sont les options d'affichage d'une notification
type NotificationOptions struct {
	Body               string
	Icon               string
	Badge              string
	Data               string // URL cible ouverte au clic
	RequireInteraction bool
	Actions            []Action
}

// Notification est une notification affichée par le worker
type Notification struct {
	ID      string
	Title   string
	Options NotificationOptions
}

// pushPayload est le format structuré attendu dans un message push
type pushPayload struct {
	Title              string   `json:"title"`
	Body               string   `json:"body"`
	URL                string   `json:"url"`
	RequireInteraction bool     `json:"requireInteraction"`
	Actions            []Action `json:"actions"`
}

// Notifier affiche et ferme les notifications
type Notifier interface {
	ShowNotification(n *Notification) error
	CloseNotification(id string) error
}

// WindowClient est une fenêtre ouverte contrôlée par le worker
type WindowClient interface {
	URL() string
	Focus() error
}

// ClientRegistry expose les fenêtres clientes de la plateforme
type ClientRegistry interface {
	MatchAll(ctx context.Context) ([]WindowClient, error)
	OpenWindow(ctx context.Context, url string) error
	// Claim place toutes les fenêtres ouvertes sous le contrôle du worker
	Claim(ctx context.Context) error
}

// Controller est le contrôleur du service worker
type Controller struct {
	notifier Notifier
	clients  ClientRegistry

	mu        sync.Mutex
	installed bool
	ready     chan struct{}
	readyOnce sync.Once
}

// NewController crée un contrôleur non encore installé
func NewController(notifier Notifier, clients ClientRegistry) *Controller {
	return &Controller{
		notifier: notifier,
		clients:  clients,
		ready:    make(chan struct{}),
	}
}

// HandleInstall traite l'événement d'installation
// L'attente d'un nouveau worker est court-circuitée (skipWaiting) :
// un worker fraîchement déployé prend la main sans attendre la fermeture des onglets
func (c *Controller) HandleInstall() {
	c.mu.Lock()
	c.installed = true
	c.mu.Unlock()
	log.Println("✓ Service worker installé")
}

// Installed indique si l'événement d'installation a été traité
func (c *Controller) Installed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.installed
}

// HandleActivate traite l'événement d'activation : toutes les fenêtres
// ouvertes passent immédiatement sous le contrôle du worker, sans rechargement
func (c *Controller) HandleActivate(ctx context.Context) {
	if err := c.clients.Claim(ctx); err != nil {
		// L'activation reste acquise, seule la prise de contrôle est dégradée
		log.Printf("⚠️  Erreur lors de la prise de contrôle des clients: %v", err)
	}

	c.readyOnce.Do(func() {
		close(c.ready)
	})
	log.Println("✓ Service worker activé")
}

// Ready suspend l'appelant jusqu'à ce que le worker soit actif et contrôle
// les clients (l'équivalent de navigator.serviceWorker.ready)
func (c *Controller) Ready(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HandlePush traite un message push entrant et affiche la notification
// Un payload non parseable est dégradé en texte brut : aucune erreur ne
// s'échappe du gestionnaire, l'événement se résout toujours
func (c *Controller) HandlePush(ctx context.Context, data []byte) {
	if len(data) == 0 {
		return
	}

	n := buildNotification(data)
	n.ID = uuid.NewString()

	if err := c.notifier.ShowNotification(n); err != nil {
		log.Printf("❌ Erreur lors de l'affichage de la notification: %v", err)
	}
}

// buildNotification construit la notification depuis le payload,
// structuré si possible, texte brut sinon
func buildNotification(data []byte) *Notification {
	var payload pushPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		// Payload non JSON : texte brut avec le titre par défaut
		return &Notification{
			Title: DefaultTitle,
			Options: NotificationOptions{
				Body:  string(data),
				Icon:  DefaultIcon,
				Badge: DefaultBadge,
				Data:  DefaultURL,
			},
		}
	}

	title := payload.Title
	if title == "" {
		title = DefaultTitle
	}
	body := payload.Body
	if body == "" {
		body = DefaultBody
	}
	url := payload.URL
	if url == "" {
		url = DefaultURL
	}

	return &Notification{
		Title: title,
		Options: NotificationOptions{
			Body:               body,
			Icon:               DefaultIcon,
			Badge:              DefaultBadge,
			Data:               url,
			RequireInteraction: payload.RequireInteraction,
			Actions:            payload.Actions,
		},
	}
}

// HandleNotificationClick ferme la notification puis focalise la fenêtre
// qui affiche déjà l'URL cible, ou en ouvre une nouvelle
func (c *Controller) HandleNotificationClick(ctx context.Context, n *Notification) {
	if err := c.notifier.CloseNotification(n.ID); err != nil {
		log.Printf("⚠️  Erreur lors de la fermeture de la notification: %v", err)
	}

	target := n.Options.Data
	if target == "" {
		target = DefaultURL
	}

	windows, err := c.clients.MatchAll(ctx)
	if err != nil {
		log.Printf("❌ Erreur lors de la recherche des fenêtres: %v", err)
		return
	}

	for _, w := range windows {
		if w.URL() == target {
			if err := w.Focus(); err != nil {
				log.Printf("⚠️  Erreur lors du focus de la fenêtre: %v", err)
			}
			return
		}
	}

	if err := c.clients.OpenWindow(ctx, target); err != nil {
		log.Printf("❌ Erreur lors de l'ouverture de la fenêtre: %v", err)
	}
}
