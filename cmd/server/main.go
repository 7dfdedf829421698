package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"connplanner/internal/config"
	cronrunner "connplanner/internal/cron"
	"connplanner/internal/db"
	"connplanner/internal/handler"
	"connplanner/internal/logger"
	gormrepository "connplanner/internal/repository/gorm"
	"connplanner/internal/service"

	_ "connplanner/docs"
)

func main() {
	cfgPath := os.Getenv("CP_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("CP_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(dbConn); err != nil {
			logger.Fatal("auto-migrate failed", zap.Error(err))
		}
	}

	store := gormrepository.New(dbConn.Gorm)

	var activitySvc *service.ActivityService
	if cfg.Audit.Enabled {
		activitySvc = &service.ActivityService{Repo: store, Logger: logger}
	}
	connectionSvc := &service.ConnectionService{Repo: store, Logger: logger, Activity: activitySvc}
	plannerSvc := &service.PlannerService{Repo: store, Logger: logger, Activity: activitySvc}
	masterDataSvc := &service.MasterDataService{Repo: store, Logger: logger, Activity: activitySvc}
	statisticsSvc := &service.StatisticsService{
		Repo:      store,
		SQL:       dbConn.SQL,
		StartedAt: time.Now().UTC(),
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware(cfg.Server.CORSOrigins))

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	connectionHandler := &handler.ConnectionHandler{Service: connectionSvc, Logger: logger}
	connectionHandler.Register(engine)
	plannerHandler := &handler.PlannerHandler{Service: plannerSvc, Logger: logger}
	plannerHandler.Register(engine)
	masterDataHandler := &handler.MasterDataHandler{Service: masterDataSvc, Logger: logger}
	masterDataHandler.Register(engine)
	statisticsHandler := &handler.StatisticsHandler{Service: statisticsSvc, Logger: logger}
	statisticsHandler.Register(engine)
	if activitySvc != nil {
		activityHandler := &handler.ActivityHandler{Service: activitySvc, Logger: logger}
		activityHandler.Register(engine)
	}

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled && activitySvc != nil {
		_, err := cronRunner.Add(cfg.Cron.ActivityPrune, func(ctx context.Context) {
			n, err := activitySvc.Prune(ctx, cfg.Audit.Retention)
			if err != nil {
				logger.Warn("activity prune failed", zap.Error(err))
				return
			}
			if n > 0 {
				logger.Info("pruned activity logs", zap.Int64("count", n))
			}
		})
		if err != nil {
			logger.Warn("cron register activity prune failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAll := len(origins) == 0
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "":
			if _, ok := allowed[origin]; ok {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
