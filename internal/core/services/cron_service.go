package services

import (
	"context"
	"log"
	"time"

	"hmc-messhub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the periodic housekeeping jobs
type CronService struct {
	cron          *cron.Cron
	tokenRepo     repositories.RefreshTokenRepository
	notifications *NotificationService
}

// NewCronService creates a new cron service
func NewCronService(tokenRepo repositories.RefreshTokenRepository, notifications *NotificationService) *CronService {
	return &CronService{
		cron:          cron.New(),
		tokenRepo:     tokenRepo,
		notifications: notifications,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	// Purge expired refresh tokens nightly
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens); err != nil {
		return err
	}
	// Drop expired notices hourly
	if _, err := s.cron.AddFunc("@hourly", s.purgeExpiredNotifications); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped")
}

func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("Failed to purge expired refresh tokens: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Purged %d expired refresh tokens", deleted)
	}
}

func (s *CronService) purgeExpiredNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.notifications.PurgeExpired(ctx)
	if err != nil {
		log.Printf("Failed to purge expired notifications: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Purged %d expired notifications", deleted)
	}
}
