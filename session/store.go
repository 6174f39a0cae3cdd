// Package session persiste les préférences et l'état d'authentification
// de chaque projet de mariage, avec des clés préfixées par projet.
// Le support de stockage (localStorage côté navigateur) est injecté,
// ce qui permet un faux en mémoire dans les tests.
package session

import (
	"strconv"
	"time"
)

// Préfixes des clés, un par donnée persistée
const (
	authenticatedPrefix = "authenticated_"
	credentialPrefix    = "credential_"
	rolePrefix          = "role_"
	lastVisitPrefix     = "lastVisit_"
	notificationPrefix  = "notification_"
	themePrefix         = "theme_"
)

// Rôles sélectionnables
const (
	RoleBride = "bride"
	RoleGroom = "groom"
)

// KeyValue est le support de stockage clé/valeur injecté
// Get retourne false si la clé est absente ; aucune opération n'échoue
type KeyValue interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Store expose les accès nommés par projet au-dessus du KeyValue
type Store struct {
	kv KeyValue
}

// NewStore crée un Store au-dessus du support donné
func NewStore(kv KeyValue) *Store {
	return &Store{kv: kv}
}

// SetAuthenticated enregistre le drapeau d'authentification du projet
func (s *Store) SetAuthenticated(projectID string, authenticated bool) {
	if projectID == "" {
		return
	}
	if authenticated {
		s.kv.Set(authenticatedPrefix+projectID, "true")
	} else {
		s.kv.Delete(authenticatedPrefix + projectID)
	}
}

// IsAuthenticated retourne le drapeau d'authentification du projet
func (s *Store) IsAuthenticated(projectID string) bool {
	if projectID == "" {
		return false
	}
	value, _ := s.kv.Get(authenticatedPrefix + projectID)
	return value == "true"
}

// SaveCredential enregistre le jeton d'identification du projet
func (s *Store) SaveCredential(projectID, token string) {
	if projectID == "" {
		return
	}
	s.kv.Set(credentialPrefix+projectID, token)
}

// GetCredential retourne le jeton d'identification, ou "" s'il est absent
func (s *Store) GetCredential(projectID string) string {
	if projectID == "" {
		return ""
	}
	value, _ := s.kv.Get(credentialPrefix + projectID)
	return value
}

// SaveUserRole enregistre le rôle choisi (bride/groom)
func (s *Store) SaveUserRole(projectID, role string) {
	if projectID == "" {
		return
	}
	s.kv.Set(rolePrefix+projectID, role)
}

// GetUserRole retourne le rôle choisi, ou "" s'il est absent
func (s *Store) GetUserRole(projectID string) string {
	if projectID == "" {
		return ""
	}
	value, _ := s.kv.Get(rolePrefix + projectID)
	return value
}

// HasSelectedRole indique si un rôle a été choisi pour ce projet
func (s *Store) HasSelectedRole(projectID string) bool {
	return s.GetUserRole(projectID) != ""
}

// ClearUserRole efface le rôle choisi
func (s *Store) ClearUserRole(projectID string) {
	if projectID == "" {
		return
	}
	s.kv.Delete(rolePrefix + projectID)
}

// RecordVisit enregistre l'horodatage de la visite courante
func (s *Store) RecordVisit(projectID string, now time.Time) {
	if projectID == "" {
		return
	}
	s.kv.Set(lastVisitPrefix+projectID, strconv.FormatInt(now.UnixMilli(), 10))
}

// GetLastVisit retourne l'horodatage de la dernière visite
// Le second retour est false si aucune visite n'est enregistrée
func (s *Store) GetLastVisit(projectID string) (time.Time, bool) {
	if projectID == "" {
		return time.Time{}, false
	}
	value, ok := s.kv.Get(lastVisitPrefix + projectID)
	if !ok {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// SaveNotificationStatus enregistre l'état de permission des notifications
func (s *Store) SaveNotificationStatus(projectID string, allowed bool) {
	if projectID == "" {
		return
	}
	s.kv.Set(notificationPrefix+projectID, strconv.FormatBool(allowed))
}

// GetNotificationStatus retourne true si les notifications sont autorisées
func (s *Store) GetNotificationStatus(projectID string) bool {
	if projectID == "" {
		return false
	}
	value, _ := s.kv.Get(notificationPrefix + projectID)
	return value == "true"
}

// SaveThemePreference enregistre le thème choisi
func (s *Store) SaveThemePreference(projectID, theme string) {
	if projectID == "" {
		return
	}
	s.kv.Set(themePrefix+projectID, theme)
}

// GetThemePreference retourne le thème choisi, ou "" s'il est absent
func (s *Store) GetThemePreference(projectID string) string {
	if projectID == "" {
		return ""
	}
	value, _ := s.kv.Get(themePrefix + projectID)
	return value
}

// ClearProjectData efface toutes les données du projet
func (s *Store) ClearProjectData(projectID string) {
	if projectID == "" {
		return
	}
	s.kv.Delete(authenticatedPrefix + projectID)
	s.kv.Delete(credentialPrefix + projectID)
	s.kv.Delete(rolePrefix + projectID)
	s.kv.Delete(lastVisitPrefix + projectID)
	s.kv.Delete(notificationPrefix + projectID)
	s.kv.Delete(themePrefix + projectID)
}
