package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"github.com/dcastano/evalia/config"
	_ "github.com/dcastano/evalia/docs" // Swagger docs - auto-generated
	"github.com/dcastano/evalia/internal/controller"
	"github.com/dcastano/evalia/internal/event"
	"github.com/dcastano/evalia/internal/logger"
	"github.com/dcastano/evalia/internal/model"
	"github.com/dcastano/evalia/internal/persistence"
	"github.com/dcastano/evalia/internal/repository"
	"github.com/dcastano/evalia/internal/service"
	"github.com/dcastano/evalia/internal/session"
	"github.com/dcastano/evalia/internal/store"
)

// @title Evalia Assessment API
// @version 1.0
// @description Assessment platform for consultores and consultantes: tests, assignments, submissions and results over a cache-backed in-memory store.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			event.NewBus,
			NewGinEngine,
			func(cfg *config.Config) *persistence.CacheFile {
				return persistence.NewCacheFile(cfg.Data.Dir)
			},
			func(cfg *config.Config) *persistence.Bootstrapper {
				return persistence.NewBootstrapper(cfg.Data.BootstrapURL, cfg.Data.BootstrapTimeout)
			},
			persistence.NewManager,
			func(cache *persistence.CacheFile, bus *event.Bus) *store.Store {
				return store.New(cache, bus)
			},
			func(cfg *config.Config) *session.TokenManager {
				return session.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
			},
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewTestRepository,
			repository.NewAssignmentRepository,
			repository.NewResultRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthService,
			service.NewUserService,
			service.NewTestService,
			service.NewAssignmentService,
			service.NewResultService,
			service.NewExportService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewAuthController,
			controller.NewUserController,
			controller.NewTestController,
			controller.NewAssignmentController,
			controller.NewResultController,
			controller.NewDataController,
		),

		fx.Invoke(InitLogger),
		fx.Invoke(LoadInitialData),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func InitLogger(cfg *config.Config) {
	logger.Init(cfg.Log.File)
}

// LoadInitialData seeds the store: the durable cache wins, the remote
// bootstrap source fills a cold start, and anything failing leaves an empty
// but valid store.
func LoadInitialData(manager *persistence.Manager, s *store.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.Initialize(manager.InitialDocument(ctx))
	log.Info().Int("users", s.Users().Len()).Int("tests", s.Tests().Len()).
		Int("assignments", s.Assignments().Len()).Int("results", s.Results().Len()).
		Msg("Store initialized")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokens *session.TokenManager,
	users repository.UserRepository,
	authCtrl *controller.AuthController,
	userCtrl *controller.UserController,
	testCtrl *controller.TestController,
	assignmentCtrl *controller.AssignmentController,
	resultCtrl *controller.ResultController,
	dataCtrl *controller.DataController,
) {
	api := router.Group("/api/v1")

	api.POST("/auth/login", authCtrl.Login)

	authed := api.Group("")
	authed.Use(session.Middleware(tokens, users))
	{
		authed.GET("/auth/me", authCtrl.Me)

		admin := authed.Group("/admin", session.RequireRoles(model.RoleAdmin))
		{
			admin.POST("/users", userCtrl.CreateUser)
			admin.GET("/users", userCtrl.ListUsers)
			admin.GET("/users/:id", userCtrl.GetUser)
			admin.PUT("/users/:id", userCtrl.UpdateUser)
			admin.DELETE("/users/:id", userCtrl.DeleteUser)
		}

		authed.GET("/consultantes", session.RequireRoles(model.RoleAdmin, model.RoleConsultor), userCtrl.MyConsultantes)

		tests := authed.Group("/tests")
		{
			authoring := session.RequireRoles(model.RoleAdmin, model.RoleConsultor)
			tests.POST("", authoring, testCtrl.CreateTest)
			tests.GET("", authoring, testCtrl.ListTests)
			tests.GET("/:id", testCtrl.GetTest)
			tests.PUT("/:id", authoring, testCtrl.UpdateTest)
			tests.DELETE("/:id", authoring, testCtrl.DeleteTest)
		}

		assignments := authed.Group("/assignments")
		{
			assignments.POST("", session.RequireRoles(model.RoleAdmin, model.RoleConsultor), assignmentCtrl.CreateAssignment)
			assignments.GET("", assignmentCtrl.ListAssignments)
			assignments.GET("/:id", assignmentCtrl.GetAssignment)
			assignments.POST("/:id/start", session.RequireRoles(model.RoleConsultante), assignmentCtrl.StartAssignment)
			assignments.PUT("/:id/progress", session.RequireRoles(model.RoleConsultante), assignmentCtrl.SaveProgress)
			assignments.POST("/:id/submit", session.RequireRoles(model.RoleConsultante), assignmentCtrl.SubmitAssignment)
			assignments.GET("/:id/result", resultCtrl.ResultByAssignment)
		}

		results := authed.Group("/results")
		{
			results.GET("", resultCtrl.ListResults)
			results.GET("/:id", resultCtrl.GetResult)
		}

		data := authed.Group("/data", session.RequireRoles(model.RoleAdmin))
		{
			data.GET("/export", dataCtrl.ExportAll)
			data.GET("/export/:name", dataCtrl.ExportCollection)
			data.POST("/export-directory", dataCtrl.ExportToDirectory)
			data.POST("/export-bucket", dataCtrl.ExportToBucket)
			data.POST("/reset", dataCtrl.ResetData)
			data.GET("/events", dataCtrl.Events)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Evalia API server starting on port %s", cfg.Server.Port)
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
