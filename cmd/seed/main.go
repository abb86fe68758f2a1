package main

import (
	"backend/internal/database"
	"backend/internal/repository"
	"backend/internal/service"
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Seeds the database with the default roles, business elements, access rules
// and the two demo accounts (admin@example.com / user@example.com).
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "postgres")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	seeder := service.NewSeedService(
		repository.NewRoleRepository(db),
		repository.NewElementRepository(db),
		repository.NewRuleRepository(db),
		repository.NewUserRepository(db),
	)

	if err := seeder.SeedTestData(context.Background()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Test data created.")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
