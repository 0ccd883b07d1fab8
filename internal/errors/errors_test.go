package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

func TestWrapPreservesCode(t *testing.T) {
	base := errors.InvalidNotationf("invalid dice notation: %q", "2x6")
	wrapped := errors.Wrap(base, "parsing loot amount")

	assert.Equal(t, errors.CodeInvalidNotation, wrapped.Code)
	assert.True(t, errors.IsInvalidNotation(wrapped))
	assert.Equal(t, "parsing loot amount: invalid dice notation: \"2x6\"", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapUnknownError(t *testing.T) {
	wrapped := errors.Wrap(fmt.Errorf("socket closed"), "saving encounter")

	assert.Equal(t, errors.CodeUnknown, wrapped.Code)
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "no-op"))
	assert.Nil(t, errors.Wrapf(nil, "no-op %d", 1))
	assert.Nil(t, errors.WrapWithCode(nil, errors.CodeInternal, "no-op"))
}

func TestCodeCheckers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
	}{
		{"invalid notation", errors.InvalidNotation("bad dice"), errors.IsInvalidNotation},
		{"invalid transition", errors.InvalidTransition("encounter over"), errors.IsInvalidTransition},
		{"out of range", errors.OutOfRange("negative damage"), errors.IsOutOfRange},
		{"not found", errors.NotFound("no such template"), errors.IsNotFound},
		{"invalid argument", errors.InvalidArgument("nil roster"), errors.IsInvalidArgument},
		{"already exists", errors.AlreadyExists("duplicate id"), errors.IsAlreadyExists},
		{"internal", errors.Internal("broken invariant"), errors.IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.checker(tt.err))
			assert.False(t, tt.checker(fmt.Errorf("plain error")))
		})
	}
}

func TestWithMeta(t *testing.T) {
	err := errors.OutOfRange("damage must not be negative").
		WithMeta("amount", -4).
		WithMeta("participant_id", "goblin-1")

	meta := errors.GetMeta(err)
	assert.Equal(t, -4, meta["amount"])
	assert.Equal(t, "goblin-1", meta["participant_id"])
}
