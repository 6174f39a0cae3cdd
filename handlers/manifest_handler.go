package handlers

import (
	"log"
	"net/http"
	"net/url"
	"wedding-album-backend/database"
	"wedding-album-backend/models"
	"wedding-album-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
)

// Couleur de thème par défaut de l'application
const defaultThemeColor = "#b89f8d"

// ManifestHandler sert le manifeste PWA dynamique par projet
type ManifestHandler struct {
	projectRepo *database.ProjectRepository
}

// NewManifestHandler crée une nouvelle instance de ManifestHandler
func NewManifestHandler(db *mongo.Database) *ManifestHandler {
	return &ManifestHandler{
		projectRepo: database.NewProjectRepository(db),
	}
}

// GetManifest retourne le manifeste du projet
// Le paramètre ?cred= est reporté dans start_url pour que l'application
// installée se lance authentifiée (le jeton est vérifié côté client)
func (h *ManifestHandler) GetManifest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID := vars["project_id"]

	project, err := h.projectRepo.FindByProjectID(projectID)
	if err != nil {
		log.Printf("Erreur lors de la récupération du projet %s: %v", projectID, err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	if project == nil {
		utils.RespondError(w, http.StatusNotFound, "Projet introuvable")
		return
	}

	manifest := BuildManifest(project, r.URL.Query().Get("cred"))

	w.Header().Set("Content-Type", "application/manifest+json")
	utils.RespondJSON(w, http.StatusOK, manifest)
}

// BuildManifest construit le manifeste PWA d'un projet
func BuildManifest(project *models.WeddingProject, credentialToken string) models.WebAppManifest {
	startURL := "/app/" + project.ProjectID
	if credentialToken != "" {
		startURL += "?cred=" + url.QueryEscape(credentialToken)
	}

	themeColor := project.ThemeColor
	if themeColor == "" {
		themeColor = defaultThemeColor
	}

	coupleNames := project.CoupleNames()

	return models.WebAppManifest{
		Name:            coupleNames + " | Wedding Album",
		ShortName:       coupleNames,
		Description:     "Wedding album for " + coupleNames,
		StartURL:        startURL,
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      themeColor,
		Orientation:     "portrait",
		Icons: []models.ManifestIcon{
			{Src: "/icons/192.png", Sizes: "192x192", Type: "image/png", Purpose: "any maskable"},
			{Src: "/icons/512.png", Sizes: "512x512", Type: "image/png"},
		},
	}
}
