package board

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// Detail is an opened task with its comments merged in and its reports.
type Detail struct {
	Task    domain.Task
	Reports []domain.IssueReport
}

func (d Detail) clone() Detail {
	return Detail{
		Task:    d.Task.Clone(),
		Reports: append([]domain.IssueReport(nil), d.Reports...),
	}
}

// DetailPanel caches the comment and report ledgers of opened tasks for one
// viewer.
type DetailPanel struct {
	tasks    ports.TaskRepository
	comments ports.CommentService
	actor    string
	notifier Notifier

	mu     sync.Mutex
	opened map[string]Detail
}

func NewDetailPanel(tasks ports.TaskRepository, comments ports.CommentService, actor string, notifier Notifier) *DetailPanel {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &DetailPanel{
		tasks:    tasks,
		comments: comments,
		actor:    actor,
		notifier: notifier,
		opened:   make(map[string]Detail),
	}
}

// Open fetches the task and both ledgers and caches the merged value.
func (p *DetailPanel) Open(ctx context.Context, taskID string) (Detail, error) {
	var (
		task     domain.Task
		comments []domain.Comment
		reports  []domain.IssueReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		task, err = p.tasks.Get(gctx, taskID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = p.comments.ListComments(gctx, taskID)
		return err
	})
	g.Go(func() error {
		var err error
		reports, err = p.comments.ListReports(gctx, taskID)
		return err
	})
	if err := g.Wait(); err != nil {
		p.notifier.Notify(Notification{Operation: "open_task", TaskID: taskID, Err: err})
		return Detail{}, err
	}

	task.Comments = comments
	detail := Detail{Task: task, Reports: reports}

	p.mu.Lock()
	p.opened[taskID] = detail.clone()
	p.mu.Unlock()
	return detail, nil
}

func (p *DetailPanel) Cached(taskID string) (Detail, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	detail, ok := p.opened[taskID]
	if !ok {
		return Detail{}, false
	}
	return detail.clone(), true
}

func (p *DetailPanel) Close(taskID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.opened, taskID)
}

func (p *DetailPanel) AddComment(ctx context.Context, taskID, content string) (domain.Comment, error) {
	comment, err := p.comments.AddComment(ctx, taskID, content, p.actor)
	if err != nil {
		p.notifier.Notify(Notification{Operation: "add_comment", TaskID: taskID, Err: err})
		return domain.Comment{}, err
	}
	p.update(taskID, func(detail *Detail) {
		detail.Task.Comments = append(detail.Task.Comments, comment)
	})
	return comment, nil
}

// EditComment is refused locally when the viewer is not the cached author.
func (p *DetailPanel) EditComment(ctx context.Context, taskID, commentID, content string) error {
	if err := p.checkAuthor(taskID, commentID); err != nil {
		return err
	}
	if err := p.comments.EditComment(ctx, commentID, content, p.actor); err != nil {
		p.notifier.Notify(Notification{Operation: "edit_comment", TaskID: taskID, Err: err})
		return err
	}
	p.update(taskID, func(detail *Detail) {
		for i := range detail.Task.Comments {
			if detail.Task.Comments[i].ID == commentID {
				detail.Task.Comments[i].Content = content
			}
		}
	})
	return nil
}

func (p *DetailPanel) DeleteComment(ctx context.Context, taskID, commentID string) error {
	if err := p.checkAuthor(taskID, commentID); err != nil {
		return err
	}
	if err := p.comments.DeleteComment(ctx, commentID, p.actor); err != nil {
		p.notifier.Notify(Notification{Operation: "delete_comment", TaskID: taskID, Err: err})
		return err
	}
	p.update(taskID, func(detail *Detail) {
		kept := detail.Task.Comments[:0]
		for _, comment := range detail.Task.Comments {
			if comment.ID != commentID {
				kept = append(kept, comment)
			}
		}
		detail.Task.Comments = kept
	})
	return nil
}

func (p *DetailPanel) ReportIssue(ctx context.Context, taskID, message string) (domain.IssueReport, error) {
	report, err := p.comments.AddReport(ctx, taskID, message)
	if err != nil {
		p.notifier.Notify(Notification{Operation: "report_issue", TaskID: taskID, Err: err})
		return domain.IssueReport{}, err
	}
	p.update(taskID, func(detail *Detail) {
		detail.Reports = append(detail.Reports, report)
	})
	return report, nil
}

func (p *DetailPanel) checkAuthor(taskID, commentID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	detail, ok := p.opened[taskID]
	if !ok {
		return nil
	}
	for _, comment := range detail.Task.Comments {
		if comment.ID == commentID && comment.Author != p.actor {
			return domain.ErrNotCommentAuthor
		}
	}
	return nil
}

func (p *DetailPanel) update(taskID string, apply func(detail *Detail)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	detail, ok := p.opened[taskID]
	if !ok {
		return
	}
	apply(&detail)
	p.opened[taskID] = detail
}
