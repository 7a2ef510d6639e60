package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/campuscore/erp-api/config"
	"github.com/campuscore/erp-api/model"
	"github.com/campuscore/erp-api/utils/auth"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedDepartments(); err != nil {
		return fmt.Errorf("failed to seed departments: %w", err)
	}

	if err := s.SeedClassGroups(); err != nil {
		return fmt.Errorf("failed to seed class groups: %w", err)
	}

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// defaultDepartments returns the department rows with ids pinned to the
// model.DeptMap keys, in id order.
func defaultDepartments() []model.Department {
	codes := map[uint]string{1: "CSE", 2: "ECE", 3: "MECH", 4: "CIVIL", 5: "IT"}

	depts := make([]model.Department, 0, len(model.DeptMap))
	for id := uint(1); id <= uint(len(model.DeptMap)); id++ {
		depts = append(depts, model.Department{
			ID:       id,
			Name:     model.DeptMap[id],
			Code:     codes[id],
			IsActive: true,
		})
	}
	return depts
}

// defaultClassGroups returns the four global year rows with ids pinned to
// the model.ClassMap keys, in id order. Class ids are year ids everywhere
// (assigned_class_id, filters, labels), so the lookup table must carry
// exactly these rows.
func defaultClassGroups() []model.ClassGroup {
	groups := make([]model.ClassGroup, 0, len(model.ClassMap))
	for id := uint(1); id <= uint(len(model.ClassMap)); id++ {
		groups = append(groups, model.ClassGroup{
			ID:   id,
			Year: int(id),
			Name: model.ClassMap[id],
		})
	}
	return groups
}

// SeedDepartments inserts the department lookup rows mirrored by model.DeptMap
func (s *Seeder) SeedDepartments() error {
	var count int64
	if err := s.db.Model(&model.Department{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, dept := range defaultDepartments() {
		if err := s.db.Create(&dept).Error; err != nil {
			return err
		}
	}

	log.Println("Seeded departments")
	return nil
}

// SeedClassGroups inserts the global year lookup rows mirrored by model.ClassMap
func (s *Seeder) SeedClassGroups() error {
	var count int64
	if err := s.db.Model(&model.ClassGroup{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, class := range defaultClassGroups() {
		if err := s.db.Create(&class).Error; err != nil {
			return err
		}
	}

	log.Println("Seeded class groups")
	return nil
}

// SeedAdminUser creates the default admin user from ADMIN_EMAIL/ADMIN_PASSWORD
func (s *Seeder) SeedAdminUser() error {
	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	if getEnv.ADMIN_EMAIL == "" || getEnv.ADMIN_PASSWORD == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ?", getEnv.ADMIN_EMAIL).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(getEnv.ADMIN_PASSWORD)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        getEnv.ADMIN_EMAIL,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         model.RoleAdmin,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Seeded admin user")
	return nil
}
