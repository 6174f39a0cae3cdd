package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"wedding-album-backend/utils"
)

// AuthHandler gère l'authentification de l'administrateur
type AuthHandler struct {
	jwtSecret         string
	adminEmail        string
	adminPasswordHash string
}

// NewAuthHandler crée une nouvelle instance de AuthHandler
func NewAuthHandler(jwtSecret, adminEmail, adminPasswordHash string) *AuthHandler {
	return &AuthHandler{
		jwtSecret:         jwtSecret,
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
	}
}

// LoginRequest représente la requête de connexion
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authentifie l'administrateur et retourne un token JWT
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Méthode non autorisée")
		return
	}

	if h.adminEmail == "" || h.adminPasswordHash == "" {
		utils.RespondError(w, http.StatusServiceUnavailable, "Compte administrateur non configuré")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Données invalides")
		return
	}

	if req.Email != h.adminEmail || !utils.CheckPassword(h.adminPasswordHash, req.Password) {
		// Même message pour email inconnu et mauvais mot de passe
		utils.RespondError(w, http.StatusUnauthorized, "Identifiants incorrects")
		return
	}

	token, err := utils.GenerateToken(req.Email, h.jwtSecret)
	if err != nil {
		log.Printf("Erreur lors de la génération du token: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	log.Printf("✓ Connexion administrateur: %s", req.Email)
	utils.RespondSuccess(w, "Connexion réussie", map[string]string{
		"token": token,
	})
}
