// Command migrate creates or updates the journal schema and can seed a demo
// user and project for local development.
package main

import (
	"flag"
	"os"

	"trade-journal/internal/infrastructure/journal/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	defaultSeedUsername = "demo"
	defaultSeedProject  = "paper-trading"
)

func main() {
	seed := flag.Bool("seed", false, "insert a demo user and project after migrating")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		logger.Fatal("DATABASE_DSN is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatalf("connect postgres: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Trade{},
		&models.Leg{},
		&models.Tag{},
	)
	if err != nil {
		logger.Fatalf("migrate schema: %v", err)
	}
	logger.Info("schema migrated")

	if !*seed {
		return
	}

	user := models.User{
		UUID:     uuid.New(),
		Username: getString("SEED_USERNAME", defaultSeedUsername),
	}
	result := db.Where(models.User{Username: user.Username}).FirstOrCreate(&user)
	if result.Error != nil {
		logger.Fatalf("seed user: %v", result.Error)
	}

	project := models.Project{
		UserUUID: user.UUID,
		Name:     getString("SEED_PROJECT", defaultSeedProject),
	}
	result = db.Where(models.Project{UserUUID: user.UUID, Name: project.Name}).FirstOrCreate(&project)
	if result.Error != nil {
		logger.Fatalf("seed project: %v", result.Error)
	}

	logger.WithFields(logrus.Fields{
		"user":    user.Username,
		"uuid":    user.UUID.String(),
		"project": project.Name,
	}).Info("seed complete")
}

func getString(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}
