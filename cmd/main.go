package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lnthach/Margay/config"
	"github.com/lnthach/Margay/database"
	_ "github.com/lnthach/Margay/docs" // Swagger docs - auto-generated
	adminctrl "github.com/lnthach/Margay/internal/controller/admin"
	"github.com/lnthach/Margay/internal/controller/middleware"
	userctrl "github.com/lnthach/Margay/internal/controller/user"
	"github.com/lnthach/Margay/internal/logger"
	"github.com/lnthach/Margay/internal/model"
	"github.com/lnthach/Margay/internal/repository"
	"github.com/lnthach/Margay/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Margay API
// @version 1.0
// @description AI-assisted educational content generator: exam questions, lesson plans and illustrative images for teachers.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewLessonPlanRepository,
			repository.NewImagePromptRepository,
			repository.NewImageAttemptRepository,
			repository.NewImageMigrationRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewGeminiLLMService,
			service.NewImagenService,
			service.NewQuestionService,
			service.NewLessonPlanService,
			service.NewImageSelectionService,
			service.NewImageGenerationService,
			service.NewImageMigrationService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewQuestionController,
			userctrl.NewLessonPlanController,
			userctrl.NewImageController,
			adminctrl.NewMigrationController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Route gin's request log through the global zerolog logger.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	questionCtrl *userctrl.QuestionController,
	lessonPlanCtrl *userctrl.LessonPlanController,
	imageCtrl *userctrl.ImageController,
	migrationCtrl *adminctrl.MigrationController,
) {
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(cfg))
	{
		api.POST("/questions/generate", questionCtrl.GenerateQuestions)
		api.POST("/lesson-plans/generate", lessonPlanCtrl.GenerateLessonPlan)

		library := api.Group("/library")
		{
			library.POST("/questions", questionCtrl.SaveQuestion)
			library.GET("/questions", questionCtrl.ListQuestions)
			library.GET("/questions/:id", questionCtrl.GetQuestion)
			library.DELETE("/questions/:id", questionCtrl.DeleteQuestion)

			library.POST("/lesson-plans", lessonPlanCtrl.SaveLessonPlan)
			library.GET("/lesson-plans", lessonPlanCtrl.ListLessonPlans)
			library.GET("/lesson-plans/:id", lessonPlanCtrl.GetLessonPlan)
			library.DELETE("/lesson-plans/:id", lessonPlanCtrl.DeleteLessonPlan)
		}

		images := api.Group("/images")
		{
			images.POST("/generate", imageCtrl.GenerateImage)
			images.POST("/attempts", imageCtrl.RecordAttempt)
			images.POST("/select", imageCtrl.SelectImage)
			images.POST("/deselect", imageCtrl.DeselectImages)
			images.POST("/rating", imageCtrl.RateImage)
			images.GET("/selected", imageCtrl.GetSelected)
		}

		adminAPI := api.Group("/admin")
		adminAPI.Use(middleware.RequireAdmin())
		{
			adminAPI.POST("/migration/images", migrationCtrl.RunImageMigration)
			adminAPI.GET("/migration/images/validate", migrationCtrl.ValidateImageMigration)
			adminAPI.POST("/migration/images/rollback", migrationCtrl.RollbackImageMigration)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Margay API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Question{},
		&model.LessonPlan{},
		&model.ImagePrompt{},
		&model.ImageAttempt{},
		&model.MigrationLock{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
