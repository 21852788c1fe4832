package board

import "go.uber.org/zap"

// Notification is a user-visible failure report.
type Notification struct {
	Operation string
	TaskID    string
	Err       error
}

type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier reports failures through zap.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(notification Notification) {
	logger := n.Logger
	if logger == nil {
		logger = zap.L()
	}
	logger.Warn("board operation failed",
		zap.String("operation", notification.Operation),
		zap.String("task_id", notification.TaskID),
		zap.Error(notification.Err),
	)
}
