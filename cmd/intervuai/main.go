package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/soujanya-006/intervuai/internal/ai"
	"github.com/soujanya-006/intervuai/internal/config"
	"github.com/soujanya-006/intervuai/internal/filestore"
	"github.com/soujanya-006/intervuai/internal/handler"
	"github.com/soujanya-006/intervuai/internal/job"
	"github.com/soujanya-006/intervuai/internal/middleware"
	"github.com/soujanya-006/intervuai/internal/repo"
	"github.com/soujanya-006/intervuai/internal/schedule"
	"github.com/soujanya-006/intervuai/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "intervuai",
		Short: "intervuai backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run intervuai server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sqlx.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
		zap.String("file_store", cfg.FileStore.Type),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	userRepo := repo.NewUserRepo(db)
	fileRepo := repo.NewFileRepo(db)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	aiProvider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	generator := ai.NewGenerator(aiProvider, cfg.AI.ChatModel, cfg.AI.Temperature)
	embedder := ai.NewEmbedder(aiProvider, cfg.AI.EmbedModel)

	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	interviewService := service.NewInterviewService(fileRepo, store, embedder, generator, service.InterviewConfig{
		ChunkSize:     cfg.Interview.ChunkSize,
		ChunkOverlap:  cfg.Interview.ChunkOverlap,
		TopK:          cfg.Interview.TopK,
		MaxSessions:   cfg.Interview.MaxSessions,
		SessionTTL:    time.Duration(cfg.Interview.SessionTTLMinutes) * time.Minute,
		Timeout:       time.Duration(cfg.AI.Timeout) * time.Second,
		MaxInputChars: cfg.AI.MaxInputChars,
	})
	resumeService := service.NewResumeService(fileRepo, store, interviewService)

	deps := handler.RouterDeps{
		Meta:          handler.NewMetaHandler(),
		Auth:          handler.NewAuthHandler(authService),
		Resumes:       handler.NewResumeHandler(resumeService, store, 0),
		Interviews:    handler.NewInterviewHandler(interviewService),
		JWTSecret:     []byte(cfg.JWTSecret),
		AuthRateLimit: time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewSessionSweepJob(interviewService), cfg.Interview.SweepCron); err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
