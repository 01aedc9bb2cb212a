package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/franciscosanchezn/gin-recipes-api/docs" // Import generated docs
	"github.com/franciscosanchezn/gin-recipes-api/internal/auth"
	"github.com/franciscosanchezn/gin-recipes-api/internal/config"
	"github.com/franciscosanchezn/gin-recipes-api/internal/controllers"
	"github.com/franciscosanchezn/gin-recipes-api/internal/database"
	"github.com/franciscosanchezn/gin-recipes-api/internal/middleware"
	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/franciscosanchezn/gin-recipes-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db                   *gorm.DB
	configuration        *config.Config
	oauthService         *auth.OAuthService
	recipeController     controllers.RecipeController
	relationController   controllers.RelationController
	tagController        controllers.TagController
	ingredientController controllers.IngredientController
	userController       controllers.UserController
	clientController     controllers.ClientController
)

// @title Recipes API
// @version 1.0
// @description A recipe-sharing API with favorites, shopping carts and subscriptions
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	setupServices()

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection, migrates the schema and
// seeds reference data on an empty database
func setupDatabase(conf *config.Config) {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))

	// Seed reference data only if it is empty
	var count int64
	db.Model(&models.Tag{}).Count(&count)
	if count == 0 {
		log.Info("Database is empty, seeding reference data")
		seedDatabase()
	} else {
		log.Info("Database already seeded with reference data")
	}
}

// seedDatabase seeds the tag and ingredient catalogs with initial data
func seedDatabase() {
	tags := []models.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
		{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	}
	for _, tag := range tags {
		db.Create(&tag)
	}

	ingredients := []models.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "egg", MeasurementUnit: "pcs"},
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "butter", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
	}
	for _, ingredient := range ingredients {
		db.Create(&ingredient)
	}
	log.Info("Database seeded successfully")
}

// setupServices wires services and controllers over the shared connection
func setupServices() {
	oauthService = auth.NewOAuthService(db, configuration.JWTSecret)

	userService := services.NewUserService(db)
	tagService := services.NewTagService(db)
	ingredientService := services.NewIngredientService(db)
	recipeService := services.NewRecipeService(db, ingredientService)
	relationService := services.NewRelationService(db)
	subscriptionService := services.NewSubscriptionService(db)
	shoppingListService := services.NewShoppingListService(db)
	clientService := services.NewClientService(db)

	userController = controllers.NewUserController(userService)
	tagController = controllers.NewTagController(tagService)
	ingredientController = controllers.NewIngredientController(ingredientService)
	recipeController = controllers.NewRecipeController(recipeService)
	relationController = controllers.NewRelationController(relationService, subscriptionService, shoppingListService)
	clientController = controllers.NewClientController(clientService)
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	jwtSecret := []byte(configuration.JWTSecret)

	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Token endpoint
	router.POST("/oauth/token", oauthService.HandleToken)

	v1 := router.Group("/api/v1")
	{
		// Public reads resolve the viewer when a token is present so the
		// derived recipe flags are computed for the requesting user
		publicApi := v1.Group("")
		publicApi.Use(middleware.OptionalAuth(jwtSecret))
		{
			publicApi.GET("/recipes", recipeController.ListRecipes)
			publicApi.GET("/recipes/:id", recipeController.GetRecipe)
			publicApi.GET("/tags", tagController.ListTags)
			publicApi.GET("/tags/:id", tagController.GetTag)
			publicApi.GET("/ingredients", ingredientController.ListIngredients)
			publicApi.GET("/ingredients/:id", ingredientController.GetIngredient)
			publicApi.GET("/users", userController.ListUsers)
			publicApi.GET("/users/:id", userController.GetUser)
		}

		// Registration is open
		v1.POST("/users", userController.Register)

		// Protected routes (require a valid JWT access token)
		protectedApi := v1.Group("")
		protectedApi.Use(middleware.OAuth2Auth(jwtSecret))
		{
			protectedApi.GET("/users/me", userController.Me)
			protectedApi.GET("/users/subscriptions", relationController.ListSubscriptions)
			protectedApi.POST("/users/:id/subscribe", relationController.Subscribe)
			protectedApi.DELETE("/users/:id/subscribe", relationController.Unsubscribe)

			protectedApi.POST("/recipes", recipeController.CreateRecipe)
			protectedApi.PUT("/recipes/:id", recipeController.UpdateRecipe)
			protectedApi.DELETE("/recipes/:id", recipeController.DeleteRecipe)

			protectedApi.POST("/recipes/:id/favorite", relationController.Favorite)
			protectedApi.DELETE("/recipes/:id/favorite", relationController.Unfavorite)
			protectedApi.POST("/recipes/:id/shopping_cart", relationController.AddToCart)
			protectedApi.DELETE("/recipes/:id/shopping_cart", relationController.RemoveFromCart)
			protectedApi.GET("/recipes/download_shopping_cart", relationController.DownloadShoppingList)

			adminApi := protectedApi.Group("/admin")
			adminApi.Use(middleware.RequireRole("admin"))
			{
				adminApi.POST("/tags", tagController.CreateTag)
				adminApi.POST("/ingredients", ingredientController.CreateIngredient)
				adminApi.POST("/clients", clientController.CreateClient)
				adminApi.GET("/clients", clientController.ListClients)
				adminApi.DELETE("/clients/:id", clientController.DeleteClient)
			}
		}
	}

	// Swagger documentation (regenerate with `swag init -g cmd/main.go`)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-recipes-api",
	})
}
