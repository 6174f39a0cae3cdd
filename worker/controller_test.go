package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeNotifier enregistre les notifications affichées et fermées
type fakeNotifier struct {
	mu      sync.Mutex
	shown   []*Notification
	closed  []string
	showErr error
}

func (f *fakeNotifier) ShowNotification(n *Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.showErr != nil {
		return f.showErr
	}
	f.shown = append(f.shown, n)
	return nil
}

func (f *fakeNotifier) CloseNotification(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = append(f.closed, id)
	return nil
}

// fakeWindow est une fenêtre cliente simulée
type fakeWindow struct {
	url     string
	focused bool
}

func (w *fakeWindow) URL() string  { return w.url }
func (w *fakeWindow) Focus() error { w.focused = true; return nil }

// fakeClients simule le registre de fenêtres de la plateforme
type fakeClients struct {
	mu      sync.Mutex
	windows []*fakeWindow
	opened  []string
	claimed bool
}

func (f *fakeClients) MatchAll(ctx context.Context) ([]WindowClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]WindowClient, 0, len(f.windows))
	for _, w := range f.windows {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeClients) OpenWindow(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, url)
	return nil
}

func (f *fakeClients) Claim(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claimed = true
	return nil
}

func newTestController() (*Controller, *fakeNotifier, *fakeClients) {
	notifier := &fakeNotifier{}
	clients := &fakeClients{}
	return NewController(notifier, clients), notifier, clients
}

func TestInstall(t *testing.T) {
	ctrl, _, _ := newTestController()

	if ctrl.Installed() {
		t.Error("Installed() = true avant l'événement d'installation")
	}

	ctrl.HandleInstall()

	if !ctrl.Installed() {
		t.Error("Installed() = false après HandleInstall()")
	}
}

func TestActivateClaimsClients(t *testing.T) {
	ctrl, _, clients := newTestController()

	ctrl.HandleInstall()
	ctrl.HandleActivate(context.Background())

	if !clients.claimed {
		t.Error("HandleActivate() doit prendre le contrôle des clients")
	}
}

// TestReadySuspendJusquAActivation : Ready ne se débloque qu'après l'activation
func TestReadySuspendJusquAActivation(t *testing.T) {
	ctrl, _, _ := newTestController()

	var mu sync.Mutex
	var order []string

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := ctrl.Ready(context.Background()); err != nil {
			t.Errorf("Ready() erreur = %v", err)
			return
		}
		mu.Lock()
		order = append(order, "ready")
		mu.Unlock()
	}()

	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	order = append(order, "activate")
	mu.Unlock()

	ctrl.HandleInstall()
	ctrl.HandleActivate(context.Background())
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 2 || order[0] != "activate" || order[1] != "ready" {
		t.Errorf("ordre = %v, Ready doit se débloquer après l'activation", order)
	}
}

func TestReadyContexteAnnule(t *testing.T) {
	ctrl, _, _ := newTestController()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ctrl.Ready(ctx); err == nil {
		t.Error("Ready() devrait retourner l'erreur du contexte annulé")
	}
}

func TestPushPayloadStructure(t *testing.T) {
	ctrl, notifier, _ := newTestController()

	payload := `{"title":"Nouvelles photos","body":"12 photos ajoutées","url":"/app/12345","requireInteraction":true}`
	ctrl.HandlePush(context.Background(), []byte(payload))

	if len(notifier.shown) != 1 {
		t.Fatalf("notifications affichées = %d, attendu 1", len(notifier.shown))
	}
	n := notifier.shown[0]
	if n.Title != "Nouvelles photos" {
		t.Errorf("Title = %q", n.Title)
	}
	if n.Options.Body != "12 photos ajoutées" {
		t.Errorf("Body = %q", n.Options.Body)
	}
	if n.Options.Data != "/app/12345" {
		t.Errorf("Data = %q, attendu /app/12345", n.Options.Data)
	}
	if !n.Options.RequireInteraction {
		t.Error("RequireInteraction devrait être true")
	}
	if n.ID == "" {
		t.Error("chaque notification doit recevoir un identifiant")
	}
}

func TestPushChampsAbsents(t *testing.T) {
	ctrl, notifier, _ := newTestController()

	ctrl.HandlePush(context.Background(), []byte(`{}`))

	if len(notifier.shown) != 1 {
		t.Fatalf("notifications affichées = %d, attendu 1", len(notifier.shown))
	}
	n := notifier.shown[0]
	if n.Title != DefaultTitle {
		t.Errorf("Title = %q, attendu %q", n.Title, DefaultTitle)
	}
	if n.Options.Body != DefaultBody {
		t.Errorf("Body = %q, attendu %q", n.Options.Body, DefaultBody)
	}
	if n.Options.Icon != DefaultIcon || n.Options.Badge != DefaultBadge {
		t.Errorf("Icon/Badge = %q/%q, attendu les chemins par défaut", n.Options.Icon, n.Options.Badge)
	}
	if n.Options.Data != DefaultURL {
		t.Errorf("Data = %q, attendu %q", n.Options.Data, DefaultURL)
	}
}

// TestPushPayloadTexteBrut : un payload non JSON devient le corps de la notification
func TestPushPayloadTexteBrut(t *testing.T) {
	ctrl, notifier, _ := newTestController()

	ctrl.HandlePush(context.Background(), []byte("Le mariage commence dans une heure !"))

	if len(notifier.shown) != 1 {
		t.Fatalf("notifications affichées = %d, attendu 1", len(notifier.shown))
	}
	n := notifier.shown[0]
	if n.Title != DefaultTitle {
		t.Errorf("Title = %q, attendu %q", n.Title, DefaultTitle)
	}
	if n.Options.Body != "Le mariage commence dans une heure !" {
		t.Errorf("Body = %q, attendu le texte brut", n.Options.Body)
	}
}

func TestPushSansDonnees(t *testing.T) {
	ctrl, notifier, _ := newTestController()

	ctrl.HandlePush(context.Background(), nil)

	if len(notifier.shown) != 0 {
		t.Errorf("notifications affichées = %d, attendu 0 sans payload", len(notifier.shown))
	}
}

// TestPushErreurAffichageNEchappePas : une erreur plateforme ne doit pas paniquer
func TestPushErreurAffichageNEchappePas(t *testing.T) {
	notifier := &fakeNotifier{showErr: errors.New("quota dépassé")}
	ctrl := NewController(notifier, &fakeClients{})

	// Ne doit ni paniquer ni propager
	ctrl.HandlePush(context.Background(), []byte(`{"title":"t"}`))
}

func TestClickFocaliseFenetreExistante(t *testing.T) {
	ctrl, notifier, clients := newTestController()
	target := &fakeWindow{url: "/app/12345"}
	clients.windows = []*fakeWindow{
		{url: "/"},
		target,
	}

	n := &Notification{ID: "n1", Options: NotificationOptions{Data: "/app/12345"}}
	ctrl.HandleNotificationClick(context.Background(), n)

	if !target.focused {
		t.Error("la fenêtre affichant l'URL cible doit être focalisée")
	}
	if len(clients.opened) != 0 {
		t.Errorf("fenêtres ouvertes = %v, aucune ouverture attendue", clients.opened)
	}
	if len(notifier.closed) != 1 || notifier.closed[0] != "n1" {
		t.Errorf("notifications fermées = %v, attendu [n1]", notifier.closed)
	}
}

func TestClickOuvreNouvelleFenetre(t *testing.T) {
	ctrl, _, clients := newTestController()
	clients.windows = []*fakeWindow{{url: "/autre"}}

	n := &Notification{ID: "n2", Options: NotificationOptions{Data: "/app/67890"}}
	ctrl.HandleNotificationClick(context.Background(), n)

	if len(clients.opened) != 1 || clients.opened[0] != "/app/67890" {
		t.Errorf("fenêtres ouvertes = %v, attendu [/app/67890]", clients.opened)
	}
}

func TestClickURLParDefaut(t *testing.T) {
	ctrl, _, clients := newTestController()

	n := &Notification{ID: "n3"}
	ctrl.HandleNotificationClick(context.Background(), n)

	if len(clients.opened) != 1 || clients.opened[0] != DefaultURL {
		t.Errorf("fenêtres ouvertes = %v, attendu [%s]", clients.opened, DefaultURL)
	}
}
