package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	base := errors.New("connection reset")

	t.Run("direct code", func(t *testing.T) {
		err := New(CodeNotFound, "person not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("code behind fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", Wrap(base, CodeInternal, "write failed"))
		assert.True(t, HasCode(err, CodeInternal))
		assert.ErrorIs(t, err, base)
	})

	t.Run("nested codes are both visible", func(t *testing.T) {
		inner := New(CodeInvariantViolation, "nil person")
		err := Wrap(inner, CodeBadRequest, "rejected")
		assert.True(t, HasCode(err, CodeBadRequest))
		assert.True(t, HasCode(err, CodeInvariantViolation))
		assert.Equal(t, CodeBadRequest, CodeOf(err))
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		assert.False(t, HasCode(base, CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(base))
		assert.Empty(t, MessageOf(base))
	})
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "conflict: name taken", New(CodeConflict, "name taken").Error())
	assert.Equal(t, "internal_error: write: boom", Wrap(errors.New("boom"), CodeInternal, "write").Error())
}
