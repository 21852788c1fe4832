package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/internal/metrics"
)

type DragState int

const (
	DragIdle DragState = iota
	DragDragging
	DragCommitting
	DragRollingBack
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	case DragCommitting:
		return "committing"
	case DragRollingBack:
		return "rolling_back"
	default:
		return fmt.Sprintf("DragState(%d)", int(s))
	}
}

var (
	ErrDragInProgress     = errors.New("a drag gesture is already active")
	ErrNotDragging        = errors.New("no task is being dragged")
	ErrInvalidDragTransit = errors.New("invalid drag state transition")
)

func isAllowedDragTransition(from, to DragState) bool {
	switch from {
	case DragIdle:
		return to == DragDragging
	case DragDragging:
		return to == DragCommitting || to == DragIdle
	case DragCommitting:
		return to == DragIdle || to == DragRollingBack
	case DragRollingBack:
		return to == DragIdle
	default:
		return false
	}
}

// DragController runs one drag gesture at a time over a Store. A drop is
// applied to the store before the remote update is confirmed; on failure the
// whole pre-drag list is restored.
type DragController struct {
	store    *Store
	tasks    ports.TaskRepository
	notifier Notifier

	mu      sync.Mutex
	state   DragState
	dragged domain.Task
}

func NewDragController(store *Store, tasks ports.TaskRepository, notifier Notifier) *DragController {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &DragController{store: store, tasks: tasks, notifier: notifier}
}

func (c *DragController) State() DragState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dragged returns the task captured when the gesture started.
func (c *DragController) Dragged() (domain.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == DragIdle {
		return domain.Task{}, false
	}
	return c.dragged.Clone(), true
}

// Start captures the task by value.
func (c *DragController) Start(taskID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != DragIdle {
		return ErrDragInProgress
	}
	task, ok := c.store.Task(taskID)
	if !ok {
		return domain.ErrTaskNotFound
	}
	if err := c.transition(DragDragging); err != nil {
		return err
	}
	c.dragged = task
	return nil
}

func (c *DragController) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != DragDragging {
		return ErrNotDragging
	}
	c.dragged = domain.Task{}
	return c.transition(DragIdle)
}

// Drop moves the dragged task to status. Dropping on the current column still
// issues the update.
func (c *DragController) Drop(ctx context.Context, status domain.TaskStatus) error {
	c.mu.Lock()
	if c.state != DragDragging {
		c.mu.Unlock()
		return ErrNotDragging
	}
	dragged := c.dragged
	if !status.Valid() {
		c.reset()
		c.mu.Unlock()
		return domain.ErrInvalidStatus
	}
	if err := c.transition(DragCommitting); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	before, err := c.store.ApplyLocalStatusChange(dragged.ID, status)
	if err != nil {
		c.finish(DragIdle)
		return err
	}

	_, err = c.tasks.Update(ctx, dragged.ID, domain.UpdateTaskInput{Status: &status})
	if err == nil {
		metrics.DragTransitions.WithLabelValues("committed").Inc()
		c.finish(DragIdle)
		return nil
	}

	c.finish(DragRollingBack)
	c.store.Restore(before)
	metrics.DragTransitions.WithLabelValues("rolled_back").Inc()
	c.notifier.Notify(Notification{Operation: "move_task", TaskID: dragged.ID, Err: err})
	c.finish(DragIdle)
	return fmt.Errorf("move task %s to %s: %w", dragged.ID, status, err)
}

func (c *DragController) finish(to DragState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.transition(to); err != nil {
		c.reset()
		return
	}
	if to == DragIdle {
		c.dragged = domain.Task{}
	}
}

func (c *DragController) reset() {
	c.state = DragIdle
	c.dragged = domain.Task{}
}

// transition must be called with mu held.
func (c *DragController) transition(to DragState) error {
	if !isAllowedDragTransition(c.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidDragTransit, c.state, to)
	}
	c.state = to
	return nil
}
