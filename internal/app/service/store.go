package service

import (
	"time"

	"boardsync/internal/core/domain"
)

// Store is the client's current belief about one group's todos. It is not
// safe for concurrent use: every mutation runs on the engine loop, so the
// store itself needs no locking.
type Store struct {
	groupID string
	todos   []domain.Todo
	index   map[string]int
}

func NewStore(groupID string) *Store {
	return &Store{
		groupID: groupID,
		todos:   []domain.Todo{},
		index:   map[string]int{},
	}
}

func (s *Store) GroupID() string {
	return s.groupID
}

func (s *Store) Len() int {
	return len(s.todos)
}

// Replace swaps the whole collection for a fresh authoritative snapshot.
// Callers normalize records before handing them in.
func (s *Store) Replace(todos []domain.Todo) {
	s.todos = make([]domain.Todo, len(todos))
	copy(s.todos, todos)
	s.reindex()
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.todos))
	for i, t := range s.todos {
		s.index[t.ID] = i
	}
}

func (s *Store) Get(todoID string) (domain.Todo, bool) {
	i, ok := s.index[todoID]
	if !ok {
		return domain.Todo{}, false
	}
	return s.todos[i], true
}

// Snapshot returns a defensive copy of the collection in stored order.
func (s *Store) Snapshot() []domain.Todo {
	out := make([]domain.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// ApplyUpdate shallow-merges the changed fields into an existing todo.
// Events for unknown ids are dropped: splicing in a partial record would
// create a ghost entry the next reload has to fight with.
func (s *Store) ApplyUpdate(todoID string, patch domain.TodoPatch, ts time.Time) bool {
	i, ok := s.index[todoID]
	if !ok {
		return false
	}
	updated := s.todos[i].Apply(patch)
	if !ts.IsZero() {
		updated.UpdatedAt = ts
	}
	s.todos[i] = updated
	return true
}

func (s *Store) ApplyStatusChange(todoID string, status domain.Status, ts time.Time) bool {
	i, ok := s.index[todoID]
	if !ok {
		return false
	}
	s.todos[i].Status = status
	if !ts.IsZero() {
		s.todos[i].UpdatedAt = ts
	}
	return true
}

// ApplyCompleted reflects a server-side aggregate completion. Only the
// status moves; the column stays where the server last placed it.
func (s *Store) ApplyCompleted(todoID string) bool {
	i, ok := s.index[todoID]
	if !ok {
		return false
	}
	s.todos[i].Status = domain.StatusDone
	return true
}

func (s *Store) BumpAttachmentCount(todoID string) bool {
	i, ok := s.index[todoID]
	if !ok {
		return false
	}
	s.todos[i].AttachmentCount++
	return true
}

func (s *Store) BumpMessageCount(todoID string) bool {
	i, ok := s.index[todoID]
	if !ok {
		return false
	}
	s.todos[i].MessageCount++
	return true
}

// MoveLocal is the synchronous in-memory half of a drag move. It never calls
// the network; the coordinator owns persistence and rollback.
func (s *Store) MoveLocal(todoID string, target domain.ColumnKey, status domain.Status) bool {
	i, ok := s.index[todoID]
	if !ok {
		return false
	}
	s.todos[i].Column = target
	s.todos[i].Status = status
	return true
}
