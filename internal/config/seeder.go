package config

import (
	"log"
	"time"

	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("Running database seeders...")

	if err := s.seedSuperAdmin(); err != nil {
		log.Printf("Warning: admin seeder skipped: %v", err)
	}
	if err := s.seedSampleHostel(); err != nil {
		log.Printf("Warning: hostel seeder skipped: %v", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// seedSuperAdmin seeds the default super admin account.
// Development/testing only; production admins should be created
// through the allowlist flow.
func (s *Seeder) seedSuperAdmin() error {
	var count int64
	s.db.Model(&models.Profile{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    "admin@messhub.local",
		Password: hashedPassword,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		profile := &models.Profile{
			UserID:   admin.ID,
			HostelID: nil, // super admin, not tied to a hostel
			Role:     "admin",
			FullName: "Super Admin",
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		log.Printf("Super admin created: %s", admin.Email)
		return nil
	})
}

// seedSampleHostel seeds one hostel with default fees for dev setups
func (s *Seeder) seedSampleHostel() error {
	var count int64
	s.db.Model(&models.Hostel{}).Count(&count)
	if count > 0 {
		return nil
	}

	semStart := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	hostel := &models.Hostel{
		Name:              "Aravali Hostel",
		Code:              "ARV",
		MonthlyMessFee:    4000,
		DailyRebateRate:   140,
		SemesterStartDate: &semStart,
	}

	if err := s.db.Create(hostel).Error; err != nil {
		return err
	}

	log.Printf("Sample hostel created: %s (%s)", hostel.Name, hostel.Code)
	return nil
}
