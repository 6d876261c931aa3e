// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/config"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
)

// Initialize opens the postgres connection and configures the pool.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormLog := logger.Default.LogMode(logger.Info)
	if cfg.LogLevel == "silent" {
		gormLog = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Failed to get underlying sql.DB")
		return
	}
	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Failed to close database connection")
	}
}

// RunMigrations auto-migrates the schema and creates the query
// indexes the ORM does not cover.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Product{},
		&models.Reservation{},
		&models.Client{},
		&models.Payment{},
		&models.ContactMessage{},
		&models.TeamMember{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db)
	logrus.Info("Database migrations completed")
	return nil
}

// createIndexes is best-effort; a failed index never blocks startup.
func createIndexes(db *gorm.DB) {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// The availability query filters on product + date range.
		"CREATE INDEX IF NOT EXISTS idx_reservations_product_dates ON reservations(product_id, date_depart, date_retour)",
		"CREATE INDEX IF NOT EXISTS idx_reservations_statut ON reservations(statut)",
		"CREATE INDEX IF NOT EXISTS idx_reservations_email ON reservations(email)",
		"CREATE INDEX IF NOT EXISTS idx_reservations_transaction ON reservations(transaction_id)",
		"CREATE INDEX IF NOT EXISTS idx_reservations_date_creation ON reservations(date_creation DESC)",

		"CREATE INDEX IF NOT EXISTS idx_payments_client ON payments(client_id)",
		"CREATE INDEX IF NOT EXISTS idx_payments_type_status ON payments(type_paiement, status)",
		"CREATE INDEX IF NOT EXISTS idx_clients_cni ON clients(cni)",

		"CREATE INDEX IF NOT EXISTS idx_contact_messages_status ON contact_messages(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_contact_messages_email ON contact_messages(email)",

		"CREATE INDEX IF NOT EXISTS idx_team_members_department ON team_members(department, is_active)",

		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			logrus.WithError(err).WithField("index", stmt).Warn("Failed to create index")
		}
	}
}

// SeedInitialData inserts the two roles and the default admin account
// when they are missing.
func SeedInitialData(db *gorm.DB) error {
	for _, name := range []string{models.RoleAdmin, models.RoleUser} {
		var count int64
		db.Model(&models.Role{}).Where("name = ?", name).Count(&count)
		if count == 0 {
			if err := db.Create(&models.Role{Name: name}).Error; err != nil {
				return fmt.Errorf("failed to create role %s: %w", name, err)
			}
		}
	}

	var adminCount int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&adminCount)
	if adminCount > 0 {
		return nil
	}

	var adminRole models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
		return fmt.Errorf("failed to load admin role: %w", err)
	}

	admin := &models.User{
		UserID:   uuid.New().String(),
		Username: "admin",
		Email:    "admin@boutique-location.com",
		Roles:    []models.Role{adminRole},
	}
	if err := admin.SetPassword("admin123!@#"); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.Info("Default admin account created")
	return nil
}
