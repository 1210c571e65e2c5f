package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "skillset/pkg/platform/audit"
)

func keys(events []audit.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Key)
	}
	return out
}

func TestListRecent(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		s := NewInMemoryStore(3)
		events, err := s.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("most recent first", func(t *testing.T) {
		s := NewInMemoryStore(5)
		for i := range 3 {
			require.NoError(t, s.Append(ctx, audit.Event{Key: fmt.Sprint(i)}))
		}
		events, err := s.ListRecent(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"2", "1"}, keys(events))
	})

	t.Run("ring drops oldest", func(t *testing.T) {
		s := NewInMemoryStore(3)
		for i := range 5 {
			require.NoError(t, s.Append(ctx, audit.Event{Key: fmt.Sprint(i)}))
		}
		events, err := s.ListRecent(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"4", "3", "2"}, keys(events))
	})
}
