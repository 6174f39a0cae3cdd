package credential

import (
	"context"
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"wedding-album-backend/session"
)

// fakeProvider simule le fournisseur de données
type fakeProvider struct {
	password string
	err      error
}

func (f *fakeProvider) VerifyPassword(ctx context.Context, projectID, password string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return password == f.password, nil
}

// fakeHistory enregistre les remplacements d'URL
type fakeHistory struct {
	replaced []*url.URL
}

func (f *fakeHistory) ReplaceURL(u *url.URL) {
	f.replaced = append(f.replaced, u)
}

func newTestBridge(t *testing.T, provider *fakeProvider) (*Bridge, *session.Store, *fakeHistory) {
	t.Helper()
	store := session.NewStore(session.NewMemoryKeyValue())
	history := &fakeHistory{}
	return NewBridge(provider, store, history), store, history
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("URL invalide %q: %v", raw, err)
	}
	return u
}

func TestAuthenticateSucces(t *testing.T) {
	bridge, store, _ := newTestBridge(t, &fakeProvider{password: "amicantik"})

	ok, err := bridge.Authenticate(context.Background(), "12345", "amicantik")
	if err != nil {
		t.Fatalf("Authenticate() erreur = %v", err)
	}
	if !ok {
		t.Fatal("Authenticate() = false avec le bon mot de passe")
	}

	if !store.IsAuthenticated("12345") {
		t.Error("la session doit être authentifiée après succès")
	}
	if store.GetCredential("12345") == "" {
		t.Error("un jeton doit être stocké après succès")
	}
	if _, ok := store.GetLastVisit("12345"); !ok {
		t.Error("la visite doit être horodatée après succès")
	}
}

func TestAuthenticateEchec(t *testing.T) {
	bridge, store, _ := newTestBridge(t, &fakeProvider{password: "amicantik"})

	ok, err := bridge.Authenticate(context.Background(), "12345", "mauvais")
	if err != nil {
		t.Fatalf("Authenticate() erreur = %v", err)
	}
	if ok {
		t.Fatal("Authenticate() = true avec un mauvais mot de passe")
	}

	if store.IsAuthenticated("12345") {
		t.Error("la session ne doit pas être authentifiée après échec")
	}
	if store.GetCredential("12345") != "" {
		t.Error("aucun jeton ne doit être stocké après échec")
	}
}

func TestAuthenticateCompteurDeTentatives(t *testing.T) {
	bridge, _, _ := newTestBridge(t, &fakeProvider{password: "amicantik"})

	// Tentatives illimitées : le compteur monte, rien ne bloque
	for i := 1; i <= 5; i++ {
		bridge.Authenticate(context.Background(), "12345", "mauvais")
		if got := bridge.Attempts("12345"); got != i {
			t.Fatalf("Attempts() = %d après %d échecs", got, i)
		}
	}

	// Le succès remet le compteur à zéro
	ok, _ := bridge.Authenticate(context.Background(), "12345", "amicantik")
	if !ok {
		t.Fatal("Authenticate() = false avec le bon mot de passe")
	}
	if got := bridge.Attempts("12345"); got != 0 {
		t.Errorf("Attempts() = %d après succès, attendu 0", got)
	}
}

func TestAuthenticateErreurFournisseur(t *testing.T) {
	bridge, _, _ := newTestBridge(t, &fakeProvider{err: errors.New("délai dépassé")})

	ok, err := bridge.Authenticate(context.Background(), "12345", "amicantik")
	if err == nil {
		t.Fatal("Authenticate() doit propager l'erreur du fournisseur")
	}
	if ok {
		t.Error("Authenticate() = true malgré l'erreur")
	}
}

// TestJetonAllerRetour : le jeton généré à l'authentification ouvre la session
// au lancement suivant, et le paramètre disparaît de l'URL
func TestJetonAllerRetour(t *testing.T) {
	provider := &fakeProvider{password: "amicantik"}
	bridge, store, _ := newTestBridge(t, provider)

	if ok, _ := bridge.Authenticate(context.Background(), "12345", "amicantik"); !ok {
		t.Fatal("Authenticate() = false")
	}
	token := store.GetCredential("12345")

	// Lancement à froid : même jeton stocké, session non authentifiée
	fresh := session.NewStore(session.NewMemoryKeyValue())
	fresh.SaveCredential("12345", token)
	history := &fakeHistory{}
	launched := NewBridge(provider, fresh, history)

	launchURL := mustParse(t, "https://album.example.com/app/12345?cred="+url.QueryEscape(token))
	if !launched.IsAuthenticated("12345", launchURL) {
		t.Fatal("IsAuthenticated() = false avec le jeton valide")
	}

	if launchURL.Query().Has("cred") {
		t.Errorf("le paramètre cred doit être retiré, URL = %s", launchURL)
	}
	if len(history.replaced) != 1 {
		t.Errorf("remplacements d'URL = %d, attendu 1", len(history.replaced))
	}
	if !fresh.IsAuthenticated("12345") {
		t.Error("la session doit rester authentifiée après le lancement")
	}
}

// TestJetonDifferent : un jeton qui ne correspond pas n'ouvre rien
func TestJetonDifferent(t *testing.T) {
	bridge, store, history := newTestBridge(t, &fakeProvider{password: "amicantik"})
	store.SaveCredential("12345", GenerateToken("12345", time.Now()))

	launchURL := mustParse(t, "https://album.example.com/app/12345?cred=faux-jeton")
	if bridge.IsAuthenticated("12345", launchURL) {
		t.Fatal("IsAuthenticated() = true avec un jeton différent")
	}
	if store.IsAuthenticated("12345") {
		t.Error("la session ne doit pas être authentifiée")
	}
	if len(history.replaced) != 0 {
		t.Error("l'URL ne doit pas être réécrite sur refus")
	}
}

func TestJetonAbsentOuVide(t *testing.T) {
	bridge, store, _ := newTestBridge(t, &fakeProvider{})
	store.SaveCredential("12345", "jeton-stocke")

	tests := []struct {
		name string
		url  string
	}{
		{"sans paramètre", "https://album.example.com/app/12345"},
		{"paramètre vide", "https://album.example.com/app/12345?cred="},
	}
	for _, tt := range tests {
		if bridge.TryCredentialLaunch("12345", mustParse(t, tt.url)) {
			t.Errorf("%s: TryCredentialLaunch() = true", tt.name)
		}
	}

	// Jeton dans l'URL mais rien de stocké
	cold, _, _ := newTestBridge(t, &fakeProvider{})
	if cold.TryCredentialLaunch("12345", mustParse(t, "https://album.example.com/app/12345?cred=abc")) {
		t.Error("TryCredentialLaunch() = true sans jeton stocké")
	}
}

func TestJetonRetireSeulementCred(t *testing.T) {
	bridge, store, _ := newTestBridge(t, &fakeProvider{})
	token := GenerateToken("12345", time.Now())
	store.SaveCredential("12345", token)

	launchURL := mustParse(t, "https://album.example.com/app/12345?role=bride&cred="+url.QueryEscape(token))
	if !bridge.TryCredentialLaunch("12345", launchURL) {
		t.Fatal("TryCredentialLaunch() = false avec le jeton valide")
	}

	if launchURL.Query().Has("cred") {
		t.Error("le paramètre cred doit disparaître")
	}
	if launchURL.Query().Get("role") != "bride" {
		t.Error("les autres paramètres doivent être conservés")
	}
}

func TestGuard(t *testing.T) {
	bridge, store, _ := newTestBridge(t, &fakeProvider{})
	launchURL := mustParse(t, "https://album.example.com/app/12345")

	if got := bridge.Guard("12345", launchURL, false); got != GuardLoading {
		t.Errorf("Guard(vérification en cours) = %v, attendu %v", got, GuardLoading)
	}
	if got := bridge.Guard("12345", launchURL, true); got != GuardRedirect {
		t.Errorf("Guard(non authentifié) = %v, attendu %v", got, GuardRedirect)
	}

	store.SetAuthenticated("12345", true)
	if got := bridge.Guard("12345", launchURL, true); got != GuardAllow {
		t.Errorf("Guard(authentifié) = %v, attendu %v", got, GuardAllow)
	}
}

func TestGenerateTokenFormat(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	token := GenerateToken("12345", now)

	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("le jeton doit être du base64 valide: %v", err)
	}
	if !strings.HasPrefix(string(decoded), "12345:") {
		t.Errorf("jeton décodé = %q, attendu le préfixe \"12345:\"", decoded)
	}
	if string(decoded) != "12345:1700000000000" {
		t.Errorf("jeton décodé = %q, attendu \"12345:1700000000000\"", decoded)
	}
}
