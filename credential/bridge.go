// Package credential relie la vérification du mot de passe d'un projet au
// jeton de lancement de l'application installée : génération du jeton après
// authentification, acceptation du jeton porté par l'URL de lancement et
// décision de garde des routes protégées.
package credential

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"wedding-album-backend/session"
)

// credParam est le paramètre de requête portant le jeton au lancement
const credParam = "cred"

// GuardDecision est la décision de garde d'une route protégée
type GuardDecision string

const (
	// GuardAllow : la session est authentifiée, le contenu protégé est servi
	GuardAllow GuardDecision = "allow"
	// GuardRedirect : non authentifié, rediriger vers la saisie du mot de passe
	GuardRedirect GuardDecision = "redirect"
	// GuardLoading : vérification en cours, afficher un état neutre
	GuardLoading GuardDecision = "loading"
)

// DataProvider vérifie le mot de passe d'un projet
// Les appels sont lents et faillibles : jamais supposés instantanés
type DataProvider interface {
	VerifyPassword(ctx context.Context, projectID, password string) (bool, error)
}

// History remplace l'URL visible sans navigation ni rechargement
type History interface {
	ReplaceURL(u *url.URL)
}

// Bridge gère l'authentification par mot de passe et le jeton de lancement
type Bridge struct {
	provider DataProvider
	store    *session.Store
	history  History
	now      func() time.Time

	mu       sync.Mutex
	attempts map[string]int
}

// NewBridge crée un Bridge
// history peut être nil : le paramètre de lancement n'est alors pas retiré
func NewBridge(provider DataProvider, store *session.Store, history History) *Bridge {
	return &Bridge{
		provider: provider,
		store:    store,
		history:  history,
		now:      time.Now,
		attempts: make(map[string]int),
	}
}

// Authenticate vérifie le mot de passe saisi auprès du fournisseur de données
// Sur succès : session authentifiée, visite horodatée, nouveau jeton généré et
// stocké. Sur échec : compteur de tentatives incrémenté, aucune limite
func (b *Bridge) Authenticate(ctx context.Context, projectID, password string) (bool, error) {
	valid, err := b.provider.VerifyPassword(ctx, projectID, password)
	if err != nil {
		return false, fmt.Errorf("vérification du mot de passe: %w", err)
	}

	if !valid {
		b.mu.Lock()
		b.attempts[projectID]++
		count := b.attempts[projectID]
		b.mu.Unlock()
		log.Printf("⚠️  Mot de passe incorrect pour le projet %s (tentative %d)", projectID, count)
		return false, nil
	}

	now := b.now()
	token := GenerateToken(projectID, now)
	b.store.SetAuthenticated(projectID, true)
	b.store.RecordVisit(projectID, now)
	b.store.SaveCredential(projectID, token)

	b.mu.Lock()
	delete(b.attempts, projectID)
	b.mu.Unlock()

	log.Printf("✓ Authentification réussie pour le projet %s", projectID)
	return true, nil
}

// Attempts retourne le nombre de tentatives échouées depuis le dernier succès
// Compteur en mémoire seulement, jamais persisté
func (b *Bridge) Attempts(projectID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts[projectID]
}

// TryCredentialLaunch accepte le jeton porté par l'URL de lancement
// Le jeton est accepté ssi non vide et identique octet pour octet au jeton
// stocké pour ce projet ; sur acceptation la session devient authentifiée et
// le paramètre est retiré de l'URL visible. Retourne true si accepté
func (b *Bridge) TryCredentialLaunch(projectID string, launchURL *url.URL) bool {
	if launchURL == nil {
		return false
	}

	supplied := launchURL.Query().Get(credParam)
	stored := b.store.GetCredential(projectID)
	if supplied == "" || stored == "" || supplied != stored {
		return false
	}

	if !b.store.IsAuthenticated(projectID) {
		b.store.SetAuthenticated(projectID, true)
	}
	b.stripCredParam(launchURL)

	log.Printf("✓ Lancement authentifié par jeton pour le projet %s", projectID)
	return true
}

// stripCredParam retire le paramètre de jeton de l'URL visible
// sans déclencher de navigation
func (b *Bridge) stripCredParam(launchURL *url.URL) {
	query := launchURL.Query()
	query.Del(credParam)
	launchURL.RawQuery = query.Encode()

	if b.history != nil {
		b.history.ReplaceURL(launchURL)
	}
}

// IsAuthenticated retourne true ssi la session est déjà authentifiée ou si
// l'URL de lancement porte un jeton valide pour ce projet
func (b *Bridge) IsAuthenticated(projectID string, launchURL *url.URL) bool {
	if b.store.IsAuthenticated(projectID) {
		return true
	}
	return b.TryCredentialLaunch(projectID, launchURL)
}

// Guard est la décision de garde d'une route protégée
// checkComplete est false tant que la vérification initiale est en cours :
// le contenu protégé n'est jamais rendu pendant ce temps
func (b *Bridge) Guard(projectID string, launchURL *url.URL, checkComplete bool) GuardDecision {
	if !checkComplete {
		return GuardLoading
	}
	if b.IsAuthenticated(projectID, launchURL) {
		return GuardAllow
	}
	return GuardRedirect
}

// GenerateToken génère le jeton de lancement d'un projet :
// base64 de "projectId:timestampMillis". Aucune signature ni secret :
// le format est devinable par quiconque connaît l'identifiant du projet
func GenerateToken(projectID string, now time.Time) string {
	raw := fmt.Sprintf("%s:%d", projectID, now.UnixMilli())
	return base64.StdEncoding.EncodeToString([]byte(raw))
}
