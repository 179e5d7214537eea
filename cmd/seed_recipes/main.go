// Command seed_recipes inserts a demo user and a batch of fixture recipes
// for local development.
package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/emuats/recipely/backend/config"
	"github.com/emuats/recipely/backend/internal/database"
	"github.com/emuats/recipely/backend/internal/model"
	"github.com/emuats/recipely/backend/internal/service"
)

var fixtures = []model.Recipe{
	{
		Name:         "Classic Margherita Pizza",
		Description:  "Thin crust with tomato, mozzarella and basil",
		Instructions: "Stretch the dough, top, bake at 250C for 8 minutes.",
		CookingTime:  30,
		Ingredients:  model.JSONBStringArray{"pizza dough", "tomato sauce", "mozzarella", "basil"},
		Categories:   model.JSONBStringArray{"Dinner", "Italian"},
	},
	{
		Name:         "Shakshuka",
		Description:  "Eggs poached in spiced tomato sauce",
		Instructions: "Simmer the sauce, crack in the eggs, cover until set.",
		CookingTime:  25,
		Ingredients:  model.JSONBStringArray{"eggs", "tomatoes", "peppers", "cumin", "paprika"},
		Categories:   model.JSONBStringArray{"Breakfast"},
	},
	{
		Name:         "Green Curry Noodles",
		Description:  "Rice noodles in coconut green curry",
		Instructions: "Fry the paste, add coconut milk, toss with noodles.",
		CookingTime:  20,
		Ingredients:  model.JSONBStringArray{"rice noodles", "green curry paste", "coconut milk", "lime"},
		Categories:   model.JSONBStringArray{"Dinner", "Thai"},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("seedpass"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	seedUser := model.User{
		Name:         "Seed Cook",
		Email:        "seed@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Where("email = ?", seedUser.Email).FirstOrCreate(&seedUser).Error; err != nil {
		log.Fatalf("Failed to create seed user: %v", err)
	}

	recipes := service.NewRecipeService(db)
	ctx := context.Background()
	for i := range fixtures {
		fixtures[i].UserID = seedUser.ID
		if _, err := recipes.CreateRecipe(ctx, &fixtures[i]); err != nil {
			log.Printf("Failed to seed %q: %v", fixtures[i].Name, err)
			continue
		}
		log.Printf("Seeded recipe %q", fixtures[i].Name)
	}
}
