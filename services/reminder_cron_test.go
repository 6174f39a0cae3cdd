package services

import (
	"strings"
	"testing"
	"wedding-album-backend/models"
)

// TestWeddingDayPayload vérifie le contenu du rappel du jour J
func TestWeddingDayPayload(t *testing.T) {
	project := &models.WeddingProject{
		ProjectID: "12345",
		Bride:     models.Personne{Name: "Sarah Johnson"},
		Groom:     models.Personne{Name: "Michael Smith"},
		Venue:     models.Venue{Name: "Rosewood Gardens"},
	}

	payload := weddingDayPayload(project)

	if !strings.Contains(payload.Title, "Sarah Johnson & Michael Smith") {
		t.Errorf("Title = %q, devrait contenir les noms des mariés", payload.Title)
	}
	if !strings.Contains(payload.Body, "Rosewood Gardens") {
		t.Errorf("Body = %q, devrait contenir le lieu", payload.Body)
	}
	if payload.URL != "/app/12345" {
		t.Errorf("URL = %q, attendu /app/12345", payload.URL)
	}
	if !payload.RequireInteraction {
		t.Error("RequireInteraction devrait être true pour le rappel du jour J")
	}
}
