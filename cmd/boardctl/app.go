package main

import (
	"time"

	"go.uber.org/zap"

	"taskboard/internal/adapter/remote"
	appservice "taskboard/internal/app/service"
	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/logger"
)

type globalFlags struct {
	apiURL  string
	actor   string
	timeout time.Duration
}

// app holds the remote adapters one command invocation works with.
type app struct {
	log         *zap.Logger
	actor       string
	tasks       *remote.TaskRepository
	groups      *remote.GroupRepository
	comments    *remote.CommentService
	employees   *remote.EmployeeDirectory
	reconciler  *remote.Reconciler
	assignments *appservice.AssignmentService
	notifier    board.Notifier
}

func newApp(flags globalFlags) (*app, error) {
	cfg := config.LoadConfig()

	log, err := logger.New("boardctl", cfg.LogFile)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)

	baseURL := cfg.APIURL
	if flags.apiURL != "" {
		baseURL = flags.apiURL
	}
	timeout := cfg.APITimeout
	if flags.timeout > 0 {
		timeout = flags.timeout
	}

	client := remote.NewClient(remote.Options{
		BaseURL:        baseURL,
		Timeout:        timeout,
		BreakerTimeout: cfg.BreakerTimeout,
		MaxFailures:    cfg.BreakerMaxFailures,
	})

	a := &app{
		log:        log,
		actor:      flags.actor,
		tasks:      remote.NewTaskRepository(client),
		groups:     remote.NewGroupRepository(client),
		comments:   remote.NewCommentService(client),
		employees:  remote.NewEmployeeDirectory(client),
		reconciler: remote.NewReconciler(client),
		notifier:   board.LogNotifier{Logger: log},
	}
	a.assignments = appservice.NewAssignmentService(a.tasks, a.groups, a.employees)
	return a, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}
