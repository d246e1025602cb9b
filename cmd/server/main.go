package main

import (
	"comandas_backend/internal/database"
	"comandas_backend/internal/realtime"
	"comandas_backend/internal/router"
	"comandas_backend/pkg/utils"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; in deployed environments config comes from the shell.
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, relying on environment variables")
	}

	utils.InitLogger()

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "postgres")
	dbPassword := utils.Getenv("DB_PASSWORD", "postgres")
	dbName := utils.Getenv("DB_NAME", "comandas")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	schemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	if err := database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, schemaPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	db := database.GetDB()
	defer db.Close()

	if utils.Getenv("GIN_MODE", "") == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	origins := utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	corsConfig.AllowOrigins = strings.Split(origins, ",")
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	hub := realtime.NewHub()
	go hub.Run()

	router.Setup(engine, db, hub)

	port := utils.Getenv("SERVER_PORT", "8080")
	log.Info().Str("port", port).Msg("Starting comandas server")
	if err := engine.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
