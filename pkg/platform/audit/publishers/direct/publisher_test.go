package direct

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "skillset/pkg/platform/audit"
	"skillset/pkg/platform/audit/store/memory"
)

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("disk full")
}

func (failingStore) ListRecent(context.Context, int) ([]audit.Event, error) {
	return nil, nil
}

func TestEmit(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps timestamp and category", func(t *testing.T) {
		store := memory.NewInMemoryStore(10)
		p := New(store)

		require.NoError(t, p.Emit(ctx, audit.Event{Action: string(audit.EventSkillDeleted), Entity: "skill", Key: "go"}))

		events, err := store.ListRecent(ctx, 1)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, audit.CategoryCompliance, events[0].Category)
		assert.WithinDuration(t, time.Now(), events[0].Timestamp, time.Second)
	})

	t.Run("keeps caller timestamp", func(t *testing.T) {
		store := memory.NewInMemoryStore(10)
		at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, New(store).Emit(ctx, audit.Event{Action: "person_created", Entity: "person", Timestamp: at}))

		events, _ := store.ListRecent(ctx, 1)
		assert.Equal(t, at, events[0].Timestamp)
	})

	t.Run("rejects incomplete events", func(t *testing.T) {
		p := New(memory.NewInMemoryStore(10))
		assert.ErrorIs(t, p.Emit(ctx, audit.Event{Entity: "person"}), errMissingAction)
		assert.ErrorIs(t, p.Emit(ctx, audit.Event{Action: "person_created"}), errMissingEntity)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		err := New(failingStore{}).Emit(ctx, audit.Event{Action: "person_created", Entity: "person"})
		assert.ErrorContains(t, err, "disk full")
	})
}
