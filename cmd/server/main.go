package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simrs-rawat-inap/internal/config"
	"simrs-rawat-inap/internal/handler"
	"simrs-rawat-inap/internal/middleware"
	"simrs-rawat-inap/internal/mockdata"
	"simrs-rawat-inap/internal/service"
	"simrs-rawat-inap/internal/storage"
	"simrs-rawat-inap/internal/store"
	"simrs-rawat-inap/internal/validation"
	"simrs-rawat-inap/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize local storage
	localStore, err := storage.NewLocalStore(cfg.Storage.DataDir, cfg.Storage.QuotaBytes)
	if err != nil {
		log.Fatalf("Failed to initialize local storage: %v", err)
	}

	// 3. Initialize stores
	fileStore := store.NewFileStore(localStore)
	patientStore := store.NewPatientStore(localStore, fileStore)
	roomStore := store.NewRoomStore(localStore)

	// 4. Load mock fixtures; a load failure is non-fatal, the stores fall
	// back to the locally persisted user-added records
	loader := mockdata.NewLoader(cfg.Mock.Delay, cfg.Mock.Dir)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	patients, err := loader.FetchPatients(ctx)
	if err != nil {
		log.Printf("Warning: Failed to load patient fixtures: %v", err)
	}
	rooms, err := loader.FetchRooms(ctx)
	if err != nil {
		log.Printf("Warning: Failed to load room fixtures: %v", err)
	}
	if err := patientStore.Load(patients); err != nil {
		log.Printf("Warning: %v", err)
	}
	if err := roomStore.Load(rooms); err != nil {
		log.Printf("Warning: %v", err)
	}
	log.Printf("Loaded %d patients and %d rooms", len(patientStore.All()), len(roomStore.All()))

	// 5. Initialize validation and services
	admissionValidator := validation.NewAdmissionValidator()
	admissionService := service.NewAdmissionService(patientStore, roomStore, admissionValidator)

	// 6. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 7. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 8. Register handlers
	patientHandler := handler.NewPatientHandler(admissionService, patientStore, cfg.Hospital)
	roomHandler := handler.NewRoomHandler(roomStore)
	dashboardHandler := handler.NewDashboardHandler(patientStore, roomStore)
	fileHandler := handler.NewFileHandler(fileStore)

	// 9. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "simrs-rawat-inap",
		})
	})

	api := r.Group("/api/v1")
	{
		patients := api.Group("/patients")
		{
			patients.GET("", patientHandler.ListPatients)
			patients.POST("", patientHandler.CreatePatient)
			patients.GET("/export/csv", patientHandler.ExportCSV)
			patients.GET("/print", patientHandler.PrintList)
			patients.GET("/:id", patientHandler.GetPatient)
			patients.PUT("/:id", patientHandler.UpdatePatient)
			patients.DELETE("/:id", patientHandler.DeletePatient)
			patients.POST("/:id/discharge", patientHandler.DischargePatient)
			patients.GET("/:id/print", patientHandler.PrintPatient)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomHandler.ListRooms)
			rooms.POST("", roomHandler.CreateRoom)
			rooms.GET("/availability", roomHandler.Availability)
			rooms.GET("/:id", roomHandler.GetRoom)
			rooms.PUT("/:id", roomHandler.UpdateRoom)
			rooms.DELETE("/:id", roomHandler.DeleteRoom)
		}

		api.GET("/dashboard/stats", dashboardHandler.GetStats)
		api.GET("/files/:id", fileHandler.GetFile)
	}

	// 10. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	log.Println("Server exited")
}
