// Package board holds the client-side view of the task board: the task list
// cache, the drag-and-drop controller and the task detail panel.
package board

import (
	"context"
	"sync"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// Snapshot is a deep copy of the task list, used to roll back optimistic changes.
type Snapshot struct {
	tasks []domain.Task
}

func (s Snapshot) Tasks() []domain.Task {
	return cloneTasks(s.tasks)
}

// Store is the single owner of the visible task list. All mutations go
// through its methods.
type Store struct {
	source ports.TaskRepository

	mu         sync.RWMutex
	tasks      []domain.Task
	loading    bool
	filter     string
	generation uint64
}

func NewStore(source ports.TaskRepository) *Store {
	return &Store{source: source}
}

// Load replaces the whole list with a fresh read. The board is empty while
// the read is in flight. A response that arrives after a newer Load started
// is dropped.
func (s *Store) Load(ctx context.Context, filterUserID string) error {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.loading = true
	s.tasks = nil
	s.filter = filterUserID
	s.mu.Unlock()

	tasks, err := s.source.List(ctx, domain.TaskFilter{UserID: filterUserID})

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return nil
	}
	s.loading = false
	if err != nil {
		return err
	}
	s.tasks = cloneTasks(tasks)
	return nil
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *Store) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

func (s *Store) Task(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return domain.Task{}, false
}

// Column returns the tasks whose status is the given column, in list order.
func (s *Store) Column(status domain.TaskStatus) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Task
	for _, task := range s.tasks {
		if task.Status == status {
			out = append(out, task.Clone())
		}
	}
	return out
}

func (s *Store) Columns() map[domain.TaskStatus][]domain.Task {
	columns := make(map[domain.TaskStatus][]domain.Task, len(domain.TaskStatuses))
	for _, status := range domain.TaskStatuses {
		columns[status] = s.Column(status)
	}
	return columns
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{tasks: cloneTasks(s.tasks)}
}

// Restore puts back a snapshot verbatim.
func (s *Store) Restore(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = cloneTasks(snapshot.tasks)
}

// ApplyLocalStatusChange moves a task to another column without touching
// the remote service and returns the list as it was before.
func (s *Store) ApplyLocalStatusChange(taskID string, status domain.TaskStatus) (Snapshot, error) {
	if !status.Valid() {
		return Snapshot{}, domain.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(taskID)
	if i < 0 {
		return Snapshot{}, domain.ErrTaskNotFound
	}
	previous := Snapshot{tasks: cloneTasks(s.tasks)}
	s.tasks[i].Status = status
	return previous, nil
}

func (s *Store) ReplaceTask(taskID string, task domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(taskID)
	if i < 0 {
		return domain.ErrTaskNotFound
	}
	s.tasks[i] = task.Clone()
	return nil
}

// AppendTasks adds tasks that are not already listed and match the filter.
func (s *Store) AppendTasks(tasks ...domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, task := range tasks {
		if s.filter != "" && task.AssigneeUserID != s.filter {
			continue
		}
		if s.indexOf(task.ID) >= 0 {
			continue
		}
		s.tasks = append(s.tasks, task.Clone())
	}
}

func (s *Store) RemoveTask(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(taskID)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return true
}

// ApplyAssignmentResult reflects a group operation: the primary is replaced,
// created siblings are appended and removed ones dropped.
func (s *Store) ApplyAssignmentResult(result domain.AssignmentResult) {
	if result.Primary != nil {
		if err := s.ReplaceTask(result.Primary.ID, *result.Primary); err != nil {
			s.AppendTasks(*result.Primary)
		}
	}
	s.AppendTasks(result.Created...)
	for _, id := range result.Removed {
		s.RemoveTask(id)
	}
}

func (s *Store) indexOf(taskID string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	if tasks == nil {
		return nil
	}
	out := make([]domain.Task, len(tasks))
	for i, task := range tasks {
		out[i] = task.Clone()
	}
	return out
}
