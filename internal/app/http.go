package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mkravets/go-task-api/internal/config"
	v1 "github.com/mkravets/go-task-api/internal/delivery/http/v1"
	"github.com/mkravets/go-task-api/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	cfg := config.Global()

	authService := services.NewAuthService(
		globalLogger,
		globalPostgresPool,
		cfg.JWT.Issuer,
		[]byte(cfg.JWT.SigningKey),
		cfg.JWT.AccessTokenTTL,
	)

	// An untyped nil keeps the recorder interface nil when kafka is
	// disabled.
	var recorder services.TaskEventRecorder
	if globalEventProducer != nil {
		recorder = globalEventProducer
	}

	taskService := services.NewTaskService(
		globalLogger,
		globalPostgresPool,
		services.NewRedisTaskCache(globalRedisClient),
		recorder,
		cfg.Tasks.DefaultPageSize,
		cfg.Tasks.MaxPageSize,
		cfg.Cache.TTL,
	)

	v1Handler := v1.New(
		globalLogger,
		authService,
		taskService,
		cfg.Tasks.TopPriorityDefault,
	)

	router.POST("/register", v1Handler.HandleRegister)
	router.POST("/token", v1Handler.HandleToken)

	tasksRouter := router.Group("/tasks")
	tasksRouter.Use(v1Handler.HandleAuthMiddleware)
	tasksRouter.POST("", v1Handler.HandleCreateTask)
	tasksRouter.GET("", v1Handler.HandleListTasks)
	tasksRouter.GET("/top_priority", v1Handler.HandleTopPriorityTasks)
}
