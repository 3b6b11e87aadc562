package main

import (
	"context"
	"log"
	"os"
	"time"

	"epicerie/internal/db"
	"epicerie/internal/ingredient"
	"epicerie/internal/planner"
	"epicerie/internal/pricing"
	"epicerie/internal/recipe"
	"epicerie/internal/shopping"
	"epicerie/internal/storage"
	"epicerie/internal/units"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	if os.Getenv("CARREFOUR_API_KEY") == "" {
		log.Println("⚠️  CARREFOUR_API_KEY not set — cost estimation uses the offline catalogue")
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── CORE REPOS ─────────────────────────
	ingredientRepo := ingredient.NewPostgresRepository(pgDB)
	recipeRepo := recipe.NewPostgresRepository(pgDB)
	shoppingRepo := shopping.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	conversionTable := units.NewTable()
	carrefour := pricing.NewCarrefourClient()

	ingredientService := ingredient.NewService(ingredientRepo)
	recipeService := recipe.NewService(recipeRepo, ingredientRepo)

	shoppingService := shopping.NewService(
		shoppingRepo,
		recipeRepo,
		ingredientRepo,
		conversionTable,
		carrefour,
		r2Client,
	)

	plannerService := planner.NewService(recipeRepo)

	// ───────────────────────── HANDLERS ─────────────────────────
	ingredientHandler := ingredient.NewHandler(ingredientService)
	recipeHandler := recipe.NewHandler(recipeService)
	shoppingHandler := shopping.NewHandler(shoppingService)
	plannerHandler := planner.NewHandler(plannerService)

	// ───────────────────────── INGREDIENT ROUTES ─────────────────────────
	ingredients := r.Group("/ingredients")
	{
		ingredients.POST("", ingredientHandler.Create)
		ingredients.GET("", ingredientHandler.List)
		ingredients.GET("/:id", ingredientHandler.Get)
		ingredients.PUT("/:id", ingredientHandler.Update)
		ingredients.DELETE("/:id", ingredientHandler.Delete)
	}

	// ───────────────────────── RECIPE ROUTES ─────────────────────────
	recipes := r.Group("/recipes")
	{
		recipes.POST("", recipeHandler.Create)
		recipes.GET("", recipeHandler.List)
		recipes.GET("/search", recipeHandler.Search)
		recipes.GET("/:id", recipeHandler.Get)
		recipes.GET("/:id/ingredients", recipeHandler.GetIngredients)
		recipes.PUT("/:id", recipeHandler.Update)
		recipes.DELETE("/:id", recipeHandler.Delete)
	}

	// ───────────────────────── SHOPPING ROUTES ─────────────────────────
	shoppingGroup := r.Group("/shopping")
	{
		shoppingGroup.POST("", shoppingHandler.Create)
		shoppingGroup.GET("", shoppingHandler.List)
		shoppingGroup.POST("/from-recipes", shoppingHandler.Generate)
		shoppingGroup.GET("/:id", shoppingHandler.Get)
		shoppingGroup.PUT("/:id/from-recipes", shoppingHandler.Regenerate)
		shoppingGroup.PATCH("/:id/items/:ingredient_id/check", shoppingHandler.ToggleItem)
		shoppingGroup.GET("/:id/estimate-cost", shoppingHandler.EstimateCost)
		shoppingGroup.POST("/:id/export", shoppingHandler.Export)
		shoppingGroup.DELETE("/:id", shoppingHandler.Delete)
	}

	// ───────────────────────── PLANNING ROUTES ─────────────────────────
	r.GET("/planning/weekly-meal-plan", plannerHandler.WeeklyPlan)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
