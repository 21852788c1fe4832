package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	dbadapter "taskboard/internal/adapter/db"
	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/handlers"
	httpmiddleware "taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/memory"
	appservice "taskboard/internal/app/service"
	"taskboard/internal/config"
	"taskboard/internal/core/ports"
	"taskboard/internal/logger"
	"taskboard/pkg/translator"
)

type stores struct {
	tasks     ports.TaskRepository
	groups    ports.GroupRepository
	comments  ports.CommentRepository
	employees ports.EmployeeDirectory
}

func main() {
	cfg := config.LoadConfig()

	log, err := logger.New("taskboard-api", cfg.LogFile)
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(log)
	defer func() {
		if err := log.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	var (
		db    *sqlx.DB
		store stores
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		store = stores{
			tasks:     memory.NewTaskRepository(),
			groups:    memory.NewGroupRepository(),
			comments:  memory.NewCommentRepository(),
			employees: memory.NewEmployeeDirectory(memory.SampleEmployees()...),
		}
	default:
		db, err = dbadapter.ConnectDB(cfg)
		if err != nil {
			log.Fatal("failed to connect to mysql", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Warn("failed to close mysql connection", zap.Error(err))
			}
		}()
		store = stores{
			tasks:     dbadapter.NewTaskRepository(db),
			groups:    dbadapter.NewGroupRepository(db),
			comments:  dbadapter.NewCommentRepository(db),
			employees: dbadapter.NewEmployeeDirectory(db),
		}
	}

	taskService := appservice.NewTaskService(store.tasks)
	groupService := appservice.NewGroupService(store.groups, store.tasks)
	commentService := appservice.NewCommentService(store.comments, store.tasks)
	assignmentService := appservice.NewAssignmentService(store.tasks, store.groups, store.employees)
	reconciler := appservice.NewGroupReconciler(store.tasks, store.groups)

	var healthHandler *handlers.HealthHandler
	if db != nil {
		healthHandler = handlers.NewHealthHandler(db)
	} else {
		healthHandler = handlers.NewHealthHandler(nil)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Fatal("invalid trusted proxies", zap.Error(err))
	}
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(log))
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:     healthHandler,
		Tasks:      handlers.NewTaskHandler(taskService),
		Groups:     handlers.NewGroupHandler(groupService, reconciler),
		Comments:   handlers.NewCommentHandler(commentService),
		Employees:  handlers.NewEmployeeHandler(store.employees),
		Assignment: handlers.NewAssignmentHandler(assignmentService),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go reconciler.Run(ctx, cfg.ReconcileInterval)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	log.Info("starting server", zap.String("addr", srv.Addr), zap.String("storage", cfg.StorageDriver))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("could not start server", zap.Error(err))
	}
}
