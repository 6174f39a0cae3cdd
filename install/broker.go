// Package install pilote l'installation de l'application sur l'écran
// d'accueil : capture de l'événement d'éligibilité différé, déclenchement
// explicite du prompt, détection du mode standalone et du cas iOS.
package install

import (
	"context"
	"errors"
	"regexp"
	"sync"
)

// Choice est la décision de l'utilisateur face au prompt d'installation
type Choice string

const (
	ChoiceAccepted  Choice = "accepted"
	ChoiceDismissed Choice = "dismissed"
)

// Classification est la capacité d'installation exposée à l'interface
type Classification string

const (
	ClassInstalled   Classification = "installed"
	ClassPromptable  Classification = "promptable"
	ClassIOSManual   Classification = "ios-manual"
	ClassUnsupported Classification = "unsupported"
)

// État interne du broker
type state int

const (
	stateUninitialized state = iota
	statePromptable
	stateUnavailable
	stateInstalledPending
	stateInstalled
)

var (
	// ErrNoPrompt indique qu'aucun événement d'éligibilité n'est disponible
	ErrNoPrompt = errors.New("install: aucun prompt d'installation disponible")
	// ErrPromptInFlight indique qu'un prompt est déjà en cours
	ErrPromptInFlight = errors.New("install: un prompt est déjà en cours")
)

// EligibilityToken est le signal d'éligibilité différé capturé
// Prompt affiche l'interface native et attend la décision de l'utilisateur
// Le jeton est à usage unique : le broker le jette après le premier Prompt
type EligibilityToken interface {
	Prompt(ctx context.Context) (Choice, error)
}

// Platform expose les informations de la plateforme hôte
type Platform interface {
	// StandaloneDisplayMode indique si l'app tourne déjà en mode installé
	StandaloneDisplayMode() bool
	// UserAgent retourne le user-agent du navigateur
	UserAgent() string
}

var iosPattern = regexp.MustCompile(`iPad|iPhone|iPod`)

// IsIOS détecte un appareil iOS depuis le user-agent
func IsIOS(userAgent string) bool {
	return iosPattern.MatchString(userAgent)
}

// Broker est la machine à états de l'installation, une instance par page
type Broker struct {
	platform Platform

	mu        sync.Mutex
	state     state
	token     EligibilityToken
	prompting bool
}

// NewBroker crée le broker et applique le court-circuit standalone :
// si la page tourne déjà en mode installé, l'état est Installed d'emblée
func NewBroker(platform Platform) *Broker {
	b := &Broker{platform: platform}
	if platform.StandaloneDisplayMode() {
		b.state = stateInstalled
	}
	return b
}

// HandleEligibilityEvent capture le signal d'éligibilité de la plateforme
// (l'équivalent de beforeinstallprompt, interface par défaut supprimée)
func (b *Broker) HandleEligibilityEvent(token EligibilityToken) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Une app déjà installée ignore toute nouvelle éligibilité
	if b.state == stateInstalled || b.state == stateInstalledPending {
		return
	}

	b.token = token
	b.state = statePromptable
}

// HandleInstalled traite le signal d'installation terminée (appinstalled)
func (b *Broker) HandleInstalled() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = stateInstalled
	b.token = nil
}

// PromptInstall déclenche le prompt natif et attend la décision
// Sans jeton disponible l'appel est un no-op (ErrNoPrompt) ; un second
// appel pendant qu'une décision est en attente retourne ErrPromptInFlight
func (b *Broker) PromptInstall(ctx context.Context) (Choice, error) {
	b.mu.Lock()
	if b.prompting {
		b.mu.Unlock()
		return "", ErrPromptInFlight
	}
	token := b.token
	if token == nil {
		b.mu.Unlock()
		return "", ErrNoPrompt
	}
	b.prompting = true
	b.mu.Unlock()

	choice, err := token.Prompt(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	// Le jeton est consommé quel que soit le résultat
	b.token = nil
	b.prompting = false

	if err != nil {
		b.state = stateUnavailable
		return "", err
	}

	switch choice {
	case ChoiceAccepted:
		b.state = stateInstalledPending
	default:
		// Refusé : plus rien à proposer tant que la plateforme
		// ne ré-émet pas un événement d'éligibilité
		b.state = stateUnavailable
	}

	return choice, nil
}

// Classification calcule la capacité d'installation courante
func (b *Broker) Classification() Classification {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateInstalled, stateInstalledPending:
		return ClassInstalled
	}

	// iOS n'offre pas d'API d'installation : instructions manuelles
	if IsIOS(b.platform.UserAgent()) {
		return ClassIOSManual
	}

	if b.state == statePromptable {
		return ClassPromptable
	}

	return ClassUnsupported
}
