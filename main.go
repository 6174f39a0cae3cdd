package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"wedding-album-backend/config"
	"wedding-album-backend/database"
	"wedding-album-backend/handlers"
	"wedding-album-backend/middleware"
	"wedding-album-backend/mockapi"
	"wedding-album-backend/services"

	"github.com/gorilla/mux"
)

func main() {
	// Charger la configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement de la configuration: %v", err)
	}

	// Connexion à MongoDB
	if err := database.Connect(cfg.MongoURI, cfg.MongoDB); err != nil {
		log.Fatalf("❌ Erreur de connexion à MongoDB: %v", err)
	}
	defer database.Close()

	// Amorcer les mariages de démonstration si la base est vide
	projectRepo := database.NewProjectRepository(database.DB)
	if err := projectRepo.SeedIfEmpty(mockapi.SeedProjects()); err != nil {
		log.Printf("⚠️  Erreur lors de l'amorçage des projets: %v", err)
	}

	// Alertes Slack pour les erreurs serveur
	slackService := services.NewSlackService(cfg.SlackWebhookURL)

	// Service Web Push (désactivé si les clés VAPID ne sont pas configurées)
	subscriptionRepo := database.NewSubscriptionRepository(database.DB)
	pushService := services.NewWebPushService(
		subscriptionRepo,
		cfg.VAPIDPublicKey,
		cfg.VAPIDPrivateKey,
		cfg.VAPIDSubject,
	)
	if pushService.Enabled() {
		log.Println("✓ Service Web Push initialisé")

		// Rappels automatiques le jour du mariage
		reminderCron := services.NewReminderCron(database.DB, pushService)
		reminderCron.Start()
	} else {
		log.Println("⚠️  Clés VAPID absentes : le serveur démarre SANS notifications push")
		log.Println("💡 Générez-les avec : go run ./cmd/generate-vapid")
	}

	// Créer le routeur
	router := mux.NewRouter()

	// Appliquer les middlewares globaux
	router.Use(middleware.Logging(slackService))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	// Créer les handlers
	healthHandler := handlers.NewHealthHandler(cfg.Environment)
	authHandler := handlers.NewAuthHandler(cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPasswordHash)
	projectHandler := handlers.NewProjectHandler(database.DB)
	manifestHandler := handlers.NewManifestHandler(database.DB)
	notificationHandler := handlers.NewNotificationHandler(database.DB, pushService)

	// Route de santé (health check)
	router.HandleFunc("/api/health", healthHandler.Health).Methods("GET")

	// Connexion administrateur
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Annuaire des projets (public)
	router.HandleFunc("/api/projects", projectHandler.GetProjects).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/projects/{project_id}", projectHandler.GetProject).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/projects/{project_id}/verify-password", projectHandler.VerifyPassword).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/projects/{project_id}/download", projectHandler.RecordDownload).Methods("POST", "OPTIONS")

	// Manifeste PWA dynamique par projet
	router.HandleFunc("/api/manifest/{project_id}", manifestHandler.GetManifest).Methods("GET", "OPTIONS")

	// Routes de notifications (publiques)
	router.HandleFunc("/api/notifications/vapid-public-key", notificationHandler.GetVAPIDPublicKey).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/notifications/subscribe", notificationHandler.Subscribe).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/notifications/unsubscribe", notificationHandler.Unsubscribe).Methods("POST", "OPTIONS")

	// Routes protégées (administration)
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.Auth(cfg.JWTSecret))
	protected.HandleFunc("/notifications/send", notificationHandler.SendNotification).Methods("POST", "OPTIONS")

	// Démarrer le serveur
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Gérer l'arrêt gracieux du serveur
	go func() {
		log.Printf("🚀 Serveur démarré sur http://%s", addr)
		log.Printf("📝 Environnement: %s", cfg.Environment)
		log.Println("📋 Routes disponibles:")
		log.Println("   GET    /api/health                                  - Health check")
		log.Println("   POST   /api/auth/login                              - Connexion admin")
		log.Println("   GET    /api/projects                                - Annuaire des mariages")
		log.Println("   GET    /api/projects/{id}                           - Détails d'un mariage")
		log.Println("   POST   /api/projects/{id}/verify-password           - Vérifier le mot de passe")
		log.Println("   POST   /api/projects/{id}/download                  - Compter un téléchargement")
		log.Println("   GET    /api/manifest/{id}                           - Manifeste PWA du mariage")
		log.Println("")
		log.Println("   🔔 Notifications Web Push:")
		log.Println("   GET    /api/notifications/vapid-public-key          - Clé publique VAPID")
		log.Println("   POST   /api/notifications/subscribe                 - S'abonner")
		log.Println("   POST   /api/notifications/unsubscribe               - Se désabonner")
		log.Println("")
		log.Println("   🔒 Routes protégées:")
		log.Println("   POST   /api/notifications/send                      - Envoyer une notification")
		log.Println("\n✨ Le serveur est prêt à recevoir des requêtes!")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Erreur du serveur: %v", err)
		}
	}()

	// Attendre le signal d'arrêt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n🛑 Arrêt du serveur...")
	if err := server.Close(); err != nil {
		log.Printf("❌ Erreur lors de l'arrêt du serveur: %v", err)
	}
	log.Println("✓ Serveur arrêté proprement")
}
