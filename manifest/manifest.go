// Package manifest synchronise les métadonnées du document avec le projet
// affiché : titre, balises meta d'application et lien canonique, ce dernier
// portant le jeton de lancement stocké pour que l'application installée
// s'ouvre authentifiée.
package manifest

import (
	"net/url"

	"wedding-album-backend/session"
)

// Balises meta mises à jour à chaque changement de projet
const (
	MetaApplicationName = "application-name"
	MetaAppleTitle      = "apple-mobile-web-app-title"
	MetaOGTitle         = "og:title"
	MetaThemeColor      = "theme-color"
	MetaTileColor       = "msapplication-TileColor"
)

// Couleur de thème appliquée quand le projet n'en définit pas
const defaultThemeColor = "#b89f8d"

// Document est la surface du document manipulée par le service
type Document interface {
	SetTitle(title string)
	// SetMeta crée la balise si elle n'existe pas, sinon remplace son contenu
	SetMeta(name, content string)
	SetCanonical(href string)
}

// Service applique les métadonnées d'un projet au document
type Service struct {
	document Document
	store    *session.Store
	baseURL  string
}

// NewService crée un Service
// baseURL est l'origine servie, sans barre oblique finale
func NewService(document Document, store *session.Store, baseURL string) *Service {
	return &Service{
		document: document,
		store:    store,
		baseURL:  baseURL,
	}
}

// Update applique le titre, les balises meta et le lien canonique du projet
// Le lien canonique embarque le jeton de lancement s'il y en a un de stocké
func (s *Service) Update(projectID, coupleNames, themeColor string) {
	if themeColor == "" {
		themeColor = defaultThemeColor
	}

	title := coupleNames + " | Wedding Album"
	s.document.SetTitle(title)
	s.document.SetMeta(MetaApplicationName, title)
	s.document.SetMeta(MetaAppleTitle, title)
	s.document.SetMeta(MetaOGTitle, title)
	s.document.SetMeta(MetaThemeColor, themeColor)
	s.document.SetMeta(MetaTileColor, themeColor)

	s.document.SetCanonical(s.canonicalURL(projectID))
}

// canonicalURL construit le lien canonique du projet, jeton compris
func (s *Service) canonicalURL(projectID string) string {
	href := s.baseURL + "/app/" + projectID
	if token := s.store.GetCredential(projectID); token != "" {
		href += "?cred=" + url.QueryEscape(token)
	}
	return href
}
