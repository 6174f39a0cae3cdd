package services

import (
	"fmt"
	"log"
	"time"
	"wedding-album-backend/database"
	"wedding-album-backend/models"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReminderCron envoie les rappels du jour J aux abonnés de chaque mariage
type ReminderCron struct {
	projectRepo *database.ProjectRepository
	pushService *WebPushService
	cron        *cron.Cron
}

// NewReminderCron crée une nouvelle instance
func NewReminderCron(db *mongo.Database, pushService *WebPushService) *ReminderCron {
	return &ReminderCron{
		projectRepo: database.NewProjectRepository(db),
		pushService: pushService,
		cron:        cron.New(),
	}
}

// Start démarre le cron job
func (rc *ReminderCron) Start() {
	// Tous les matins à 8h, vérifier les mariages du jour
	rc.cron.AddFunc("0 8 * * *", rc.checkTodayWeddings)
	rc.cron.Start()
	log.Println("✓ Cron job rappels démarré (tous les jours à 8h)")
}

// Stop arrête le cron job
func (rc *ReminderCron) Stop() {
	rc.cron.Stop()
}

// checkTodayWeddings envoie un rappel pour chaque mariage qui a lieu aujourd'hui
func (rc *ReminderCron) checkTodayWeddings() {
	today := time.Now().Format("2006-01-02")

	projects, err := rc.projectRepo.FindByDate(today)
	if err != nil {
		log.Printf("Erreur recherche mariages du jour: %v", err)
		return
	}

	if len(projects) == 0 {
		return // Rien à faire
	}

	log.Printf("🔔 %d mariage(s) aujourd'hui", len(projects))

	for _, project := range projects {
		payload := weddingDayPayload(&project)
		sent, failed, err := rc.pushService.SendToProject(project.ProjectID, payload)
		if err != nil {
			log.Printf("❌ Erreur envoi rappel pour %s: %v", project.ProjectID, err)
			continue
		}
		log.Printf("✓ Rappel jour J envoyé pour %s: %d ok, %d échecs", project.ProjectID, sent, failed)
	}
}

// weddingDayPayload construit la notification de rappel du jour J
func weddingDayPayload(project *models.WeddingProject) models.NotificationPayload {
	return models.NotificationPayload{
		Title:              fmt.Sprintf("C'est le grand jour de %s !", project.CoupleNames()),
		Body:               fmt.Sprintf("Le mariage a lieu aujourd'hui à %s. Ouvrez l'album pour suivre la journée.", project.Venue.Name),
		URL:                fmt.Sprintf("/app/%s", project.ProjectID),
		RequireInteraction: true,
	}
}
