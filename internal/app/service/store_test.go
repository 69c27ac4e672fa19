package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boardsync/internal/app/service"
	"boardsync/internal/core/domain"
)

func TestStore_ApplyUpdate_MergesChangedFields(t *testing.T) {
	store := service.NewStore("g1")
	store.Replace([]domain.Todo{
		domain.Normalize(domain.Todo{ID: "t1", GroupID: "g1", Title: "Write draft"}),
	})

	title := "Write final draft"
	priority := domain.PriorityHigh
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	changed := store.ApplyUpdate("t1", domain.TodoPatch{Title: &title, Priority: &priority}, ts)

	require.True(t, changed)
	got, ok := store.Get("t1")
	require.True(t, ok)
	require.Equal(t, "Write final draft", got.Title)
	require.Equal(t, domain.PriorityHigh, got.Priority)
	require.Equal(t, ts, got.UpdatedAt)
	// Untouched fields keep their normalized defaults.
	require.Equal(t, domain.StatusPending, got.Status)
	require.Equal(t, domain.ColumnTodo, got.Column)
}

func TestStore_ApplyUpdate_UnknownIDLeavesStoreUnchanged(t *testing.T) {
	store := service.NewStore("g1")
	store.Replace([]domain.Todo{
		domain.Normalize(domain.Todo{ID: "t1", GroupID: "g1", Title: "Only one"}),
	})

	title := "Ghost"
	changed := store.ApplyUpdate("missing", domain.TodoPatch{Title: &title}, time.Now())

	require.False(t, changed)
	require.Equal(t, 1, store.Len())
	_, ok := store.Get("missing")
	require.False(t, ok)
}

func TestStore_ApplyStatusChange(t *testing.T) {
	store := service.NewStore("g1")
	store.Replace([]domain.Todo{
		domain.Normalize(domain.Todo{ID: "t1", GroupID: "g1"}),
	})

	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	require.True(t, store.ApplyStatusChange("t1", domain.StatusInProgress, ts))

	got, _ := store.Get("t1")
	require.Equal(t, domain.StatusInProgress, got.Status)
	require.Equal(t, ts, got.UpdatedAt)

	require.False(t, store.ApplyStatusChange("missing", domain.StatusDone, ts))
}

func TestStore_ApplyCompleted_SetsStatusOnly(t *testing.T) {
	store := service.NewStore("g1")
	store.Replace([]domain.Todo{
		domain.Normalize(domain.Todo{ID: "t1", GroupID: "g1", Column: domain.ColumnInProgress}),
	})

	require.True(t, store.ApplyCompleted("t1"))

	got, _ := store.Get("t1")
	require.Equal(t, domain.StatusDone, got.Status)
	// The column stays where the server last placed the card.
	require.Equal(t, domain.ColumnInProgress, got.Column)
}

func TestStore_MoveLocal(t *testing.T) {
	store := service.NewStore("g1")
	store.Replace([]domain.Todo{
		domain.Normalize(domain.Todo{ID: "t1", GroupID: "g1"}),
	})

	require.True(t, store.MoveLocal("t1", domain.ColumnInProgress, domain.StatusInProgress))

	got, _ := store.Get("t1")
	require.Equal(t, domain.ColumnInProgress, got.Column)
	require.Equal(t, domain.StatusInProgress, got.Status)
}

func TestStore_Snapshot_IsACopy(t *testing.T) {
	store := service.NewStore("g1")
	store.Replace([]domain.Todo{
		domain.Normalize(domain.Todo{ID: "t1", GroupID: "g1", Title: "original"}),
	})

	snapshot := store.Snapshot()
	snapshot[0].Title = "mutated"

	got, _ := store.Get("t1")
	require.Equal(t, "original", got.Title)
}

func TestNormalize_Defaults(t *testing.T) {
	got := domain.Normalize(domain.Todo{ID: "t1"})

	require.Equal(t, domain.StatusPending, got.Status)
	require.Equal(t, domain.PriorityMedium, got.Priority)
	require.Equal(t, domain.ColumnTodo, got.Column)
	require.NotNil(t, got.Assignments)
	require.Len(t, got.Assignments, 0)
}

func TestNormalize_KeepsExistingValues(t *testing.T) {
	got := domain.Normalize(domain.Todo{
		ID:       "t1",
		Status:   domain.StatusOverdue,
		Priority: domain.PriorityUrgent,
		Column:   domain.ColumnReview,
		Assignments: []domain.Assignment{
			{TodoID: "t1", UserID: "u1", Status: domain.AssignmentInProgress},
		},
	})

	require.Equal(t, domain.StatusOverdue, got.Status)
	require.Equal(t, domain.PriorityUrgent, got.Priority)
	require.Equal(t, domain.ColumnReview, got.Column)
	require.Len(t, got.Assignments, 1)
}
