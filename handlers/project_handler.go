package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"wedding-album-backend/database"
	"wedding-album-backend/models"
	"wedding-album-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProjectHandler gère l'annuaire des projets de mariage
type ProjectHandler struct {
	projectRepo *database.ProjectRepository
}

// NewProjectHandler crée une nouvelle instance de ProjectHandler
func NewProjectHandler(db *mongo.Database) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: database.NewProjectRepository(db),
	}
}

// GetProjects retourne l'annuaire public (résumés sans mot de passe)
func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectRepo.FindAll()
	if err != nil {
		log.Printf("Erreur lors de la récupération des projets: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	summaries := make([]models.WeddingProjectSummary, 0, len(projects))
	for i := range projects {
		summaries = append(summaries, projects[i].Summary())
	}

	utils.RespondJSON(w, http.StatusOK, summaries)
}

// GetProject retourne le détail d'un projet (le champ password n'est jamais sérialisé)
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
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

	utils.RespondJSON(w, http.StatusOK, project)
}

// VerifyPasswordRequest représente la requête de vérification de mot de passe
type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

// VerifyPassword vérifie le mot de passe d'un projet
// Le résultat est toujours 200 avec {valid: bool} : un mauvais mot de passe
// n'est pas une erreur serveur et le client gère son compteur de tentatives
func (h *ProjectHandler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Méthode non autorisée")
		return
	}

	vars := mux.Vars(r)
	projectID := vars["project_id"]

	var req VerifyPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Données invalides")
		return
	}

	project, err := h.projectRepo.FindByProjectID(projectID)
	if err != nil {
		log.Printf("Erreur lors de la vérification du mot de passe pour %s: %v", projectID, err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	if project == nil {
		utils.RespondError(w, http.StatusNotFound, "Projet introuvable")
		return
	}

	valid := req.Password != "" && req.Password == project.Password

	utils.RespondJSON(w, http.StatusOK, map[string]bool{
		"valid": valid,
	})
}

// RecordDownload incrémente le compteur de téléchargements d'un projet
func (h *ProjectHandler) RecordDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Méthode non autorisée")
		return
	}

	vars := mux.Vars(r)
	projectID := vars["project_id"]

	count, err := h.projectRepo.IncrementDownloads(projectID)
	if err != nil {
		log.Printf("Erreur lors de l'enregistrement du téléchargement pour %s: %v", projectID, err)
		utils.RespondError(w, http.StatusNotFound, "Projet introuvable")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]int{
		"downloads": count,
	})
}
