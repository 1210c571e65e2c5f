package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "skillset/pkg/platform/audit"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	var results kgo.ProduceResults
	for _, r := range rs {
		f.records = append(f.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func (f *fakeProducer) Close() { f.closed = true }

func TestEmit(t *testing.T) {
	ctx := context.Background()

	t.Run("record is keyed by entity and key", func(t *testing.T) {
		fp := &fakeProducer{}
		p := newWithProducer(fp, "audit-test")

		err := p.Emit(ctx, audit.Event{Action: "skill_deleted", Entity: "skill", Key: "dot-net", ActorID: "ops"})
		require.NoError(t, err)
		require.Len(t, fp.records, 1)

		rec := fp.records[0]
		assert.Equal(t, "audit-test", rec.Topic)
		assert.Equal(t, "skill/dot-net", string(rec.Key))

		var got audit.Event
		require.NoError(t, json.Unmarshal(rec.Value, &got))
		assert.Equal(t, "skill_deleted", got.Action)
		assert.Equal(t, audit.CategoryCompliance, got.Category)
		assert.Equal(t, "ops", got.ActorID)
		assert.False(t, got.Timestamp.IsZero())
	})

	t.Run("produce error is returned", func(t *testing.T) {
		fp := &fakeProducer{err: errors.New("broker down")}
		err := newWithProducer(fp, "audit-test").Emit(ctx, audit.Event{Action: "person_created", Entity: "person"})
		assert.ErrorContains(t, err, "broker down")
	})

	t.Run("close releases client", func(t *testing.T) {
		fp := &fakeProducer{}
		require.NoError(t, newWithProducer(fp, "audit-test").Close())
		assert.True(t, fp.closed)
	})
}

func TestNewRequiresBrokers(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
