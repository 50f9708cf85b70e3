package main

import (
	"context"
	"log"
	"os"

	"agrocalc-be/internal/repository/implementation"
	"agrocalc-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	brandRepo := implementation.NewBrandRepository(db)
	targetRepo := implementation.NewTargetRepository(db)
	productRepo := implementation.NewProductRepository(db)

	if err := SeedCatalog(context.Background(), brandRepo, targetRepo, productRepo); err != nil {
		log.Fatal("Error: Failed to seed catalog:", err)
	}

	log.Println("✅ Seeding complete.")
}
