// Command reconcile recomputes every recipe's average_rating and
// likes_count from the reviews and likes tables. Run it periodically, or
// after the logs report a failed recompute.
package main

import (
	"context"
	"log"

	"github.com/emuats/recipely/backend/config"
	"github.com/emuats/recipely/backend/internal/database"
	"github.com/emuats/recipely/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := service.NewRecipeService(db).ReconcileAggregates(context.Background()); err != nil {
		log.Fatalf("Reconcile failed: %v", err)
	}
	log.Println("Reconcile complete")
}
