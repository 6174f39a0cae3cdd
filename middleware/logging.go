package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"
	"wedding-album-backend/services"
)

// responseWriter wrapper pour capturer le code de statut
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// isCriticalError détermine si une erreur doit être notifiée sur Slack
// Les erreurs serveur (5xx) sont critiques, les erreurs utilisateur
// (mauvais mot de passe, projet introuvable...) ne le sont pas
func isCriticalError(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError
}

// Logging enregistre les requêtes HTTP et alerte Slack sur les erreurs critiques
func Logging(slackService *services.SlackService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Créer un wrapper pour capturer le code de statut
			rw := newResponseWriter(w)

			// Traiter la requête
			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			statusCode := rw.statusCode

			// Logger toutes les erreurs
			if statusCode >= http.StatusBadRequest {
				log.Printf(
					"⚠️ %s %s -> %d (%s)",
					r.Method,
					r.RequestURI,
					statusCode,
					duration,
				)

				if isCriticalError(statusCode) && slackService != nil {
					origin := r.Header.Get("Origin")
					userAgent := r.Header.Get("User-Agent")
					slackService.SendCriticalError(
						r.Method,
						r.RequestURI,
						strconv.Itoa(statusCode),
						http.StatusText(statusCode),
						origin,
						userAgent,
					)
				}
			}
		})
	}
}
