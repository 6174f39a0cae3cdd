// Package mockapi fournit la source de données simulée du client :
// les projets de mariage vivent en mémoire et chaque appel traverse une
// latence artificielle, comme le ferait un vrai backend distant.
package mockapi

import (
	"context"
	"fmt"
	"sync"
	"time"
	"wedding-album-backend/models"
)

// Latence simulée par défaut de chaque appel
const DefaultDelay = 800 * time.Millisecond

// Service implémente la source de données simulée
type Service struct {
	delay time.Duration

	mu       sync.Mutex
	projects map[string]*models.WeddingProject
	order    []string // identifiants dans l'ordre d'insertion, pour un annuaire stable
}

// New crée un service avec la latence par défaut
func New() *Service {
	return NewWithDelay(DefaultDelay)
}

// NewWithDelay crée un service avec une latence donnée (0 pour les tests)
func NewWithDelay(delay time.Duration) *Service {
	projects := make(map[string]*models.WeddingProject)
	order := make([]string, 0)
	for _, p := range SeedProjects() {
		project := p
		projects[project.ProjectID] = &project
		order = append(order, project.ProjectID)
	}

	return &Service{
		delay:    delay,
		projects: projects,
		order:    order,
	}
}

// wait simule la latence réseau en respectant l'annulation du contexte
func (s *Service) wait(ctx context.Context) error {
	if s.delay == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// GetAllProjects retourne l'annuaire des projets (résumés)
func (s *Service) GetAllProjects(ctx context.Context) ([]models.WeddingProjectSummary, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]models.WeddingProjectSummary, 0, len(s.order))
	for _, id := range s.order {
		summaries = append(summaries, s.projects[id].Summary())
	}
	return summaries, nil
}

// GetProjectByID retourne un projet complet, ou nil s'il est inconnu
func (s *Service) GetProjectByID(ctx context.Context, projectID string) (*models.WeddingProject, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projects[projectID]
	if !ok {
		return nil, nil
	}

	// Copie pour que l'appelant ne puisse pas modifier l'état interne
	copie := *project
	return &copie, nil
}

// VerifyPassword vérifie le mot de passe d'un projet
func (s *Service) VerifyPassword(ctx context.Context, projectID, password string) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projects[projectID]
	if !ok {
		return false, nil
	}

	return password != "" && password == project.Password, nil
}

// RecordDownload incrémente le compteur de téléchargements et retourne le nouveau total
func (s *Service) RecordDownload(ctx context.Context, projectID string) (int, error) {
	if err := s.wait(ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projects[projectID]
	if !ok {
		return 0, fmt.Errorf("projet %s introuvable", projectID)
	}

	project.Downloads++
	return project.Downloads, nil
}
