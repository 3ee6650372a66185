package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/storynest/quiz-service/internal/config"
	"github.com/storynest/quiz-service/internal/db"
	"github.com/storynest/quiz-service/internal/handlers"
	"github.com/storynest/quiz-service/internal/llm"
	"github.com/storynest/quiz-service/internal/logger"
	"github.com/storynest/quiz-service/internal/quizgen"
	"github.com/storynest/quiz-service/internal/repos"
	"github.com/storynest/quiz-service/internal/server"
	"github.com/storynest/quiz-service/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg := config.FromEnv()
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		cfg.Port = p
	}
	if d, _ := cmd.Flags().GetString("db"); d != "" {
		cfg.DatabaseDSN = d
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	dbSvc, err := db.New(cfg.DatabaseDSN, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := dbSvc.AutoMigrateAll(); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	gdb := dbSvc.DB()

	quizRepo := repos.NewQuizRepo(gdb, log)
	bookRepo := repos.NewBookRepo(gdb, log)
	callLogRepo := repos.NewCallLogRepo(gdb, log)

	chain, err := llm.NewChain(ctx, llm.ConfigFromEnv(), callLogRepo, log)
	if err != nil {
		return fmt.Errorf("build provider chain: %w", err)
	}
	orchestrator := quizgen.NewOrchestrator(chain, quizgen.DefaultConfig(), log)

	quizSvc := services.NewQuizService(quizRepo, bookRepo, orchestrator, log)
	bookSvc := services.NewBookService(bookRepo, log)

	router := server.NewRouter(server.RouterConfig{
		QuizHandler:  handlers.NewQuizHandler(log, quizSvc),
		BookHandler:  handlers.NewBookHandler(log, bookSvc),
		AllowOrigins: cfg.AllowOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "port", cfg.Port, "providers", len(chain))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		log.Info("shutting down", "reason", "context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
