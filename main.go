package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"dataroom/config"
	"dataroom/database"
	"dataroom/handlers"
	"dataroom/logger"
	"dataroom/middleware"
	"dataroom/models"
	"dataroom/repositories"
	"dataroom/services"
	"dataroom/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("starting dataroom service")

	// Optional .env for local overrides of the config path.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	logger.SetLevel(cfg.Logging.Level)

	if err := database.InitMySQL(&cfg.Database); err != nil {
		log.Fatalf("init mysql failed: %v", err)
	}

	if err := database.DB.AutoMigrate(
		&models.DataRoom{},
		&models.Folder{},
		&models.File{},
	); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}
	log.Println("database migration completed")

	if err := database.InitRedis(&cfg.Redis); err != nil {
		log.Fatalf("init redis failed: %v", err)
	}

	blobs, err := storage.NewDiskStore(cfg.Storage.BasePath)
	if err != nil {
		log.Fatalf("init blob store failed: %v", err)
	}

	repoContainer := repositories.NewGormRepositories(database.DB).BuildContainer()
	serviceContainer := services.NewContainer(repoContainer, blobs)
	handlers.SetServices(serviceContainer)

	services.StartCleanupWorkers(serviceContainer.Cleanup)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger())
	setupRoutes(r, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("server listening on http://%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}

func setupRoutes(r *gin.Engine, cfg *config.Config) {
	api := r.Group("/api")

	api.GET("/health", handlers.HealthCheck)

	listDataRooms := []gin.HandlerFunc{handlers.ListDataRooms}
	if cfg.RateLimit.Enabled {
		limiter := middleware.RateLimit(
			database.RedisClient,
			cfg.RateLimit.Times,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		)
		listDataRooms = []gin.HandlerFunc{limiter, handlers.ListDataRooms}
	}

	rooms := api.Group("/data-rooms")
	{
		rooms.GET("", listDataRooms...)
		rooms.POST("", handlers.CreateDataRoom)
		rooms.GET("/:id", handlers.GetDataRoom)
		rooms.DELETE("/:id", handlers.DeleteDataRoom)
	}

	folders := api.Group("/folders")
	{
		folders.POST("", handlers.CreateFolder)
		folders.GET("/:id", handlers.GetFolder)
		folders.PUT("/:id", handlers.RenameFolder)
		folders.DELETE("/:id", handlers.DeleteFolder)
	}

	files := api.Group("/files")
	{
		files.POST("/upload", handlers.UploadFile)
		files.GET("/:id", handlers.GetFile)
		files.GET("/:id/download", handlers.DownloadFile)
		files.PUT("/:id", handlers.RenameFile)
		files.DELETE("/:id", handlers.DeleteFile)
	}
}
