package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *battleErr.Error
		code  battleErr.Code
		check func(error) bool
	}{
		{"not found", battleErr.NotFoundf("creature %s", "wolf-1"), battleErr.CodeNotFound, battleErr.IsNotFound},
		{"invalid argument", battleErr.InvalidArgumentf("nil effect"), battleErr.CodeInvalidArgument, battleErr.IsInvalidArgument},
		{"validation", battleErr.Validationf("battle not started"), battleErr.CodeValidation, battleErr.IsValidation},
		{"configuration", battleErr.Configurationf("cycle at %q", "execute"), battleErr.CodeConfiguration, battleErr.IsConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.code, battleErr.GetCode(tt.err))
			assert.True(t, tt.check(tt.err))
		})
	}

	assert.Equal(t, "creature wolf-1", battleErr.NotFoundf("creature %s", "wolf-1").Error())
	assert.Equal(t, battleErr.CodeAlreadyExists, battleErr.AlreadyExistsf("rule x").Code)
	assert.Equal(t, battleErr.CodeInternal, battleErr.Internalf("boom").Code)
}

func TestWrap(t *testing.T) {
	t.Run("keeps the inner code and meta", func(t *testing.T) {
		inner := battleErr.NotFoundf("stat %s", "Armor").WithMeta("stat", "Armor")
		wrapped := battleErr.Wrapf(inner, "resolving %s", "jab")

		assert.Equal(t, "resolving jab: stat Armor", wrapped.Error())
		assert.True(t, battleErr.IsNotFound(wrapped))
		assert.Equal(t, map[string]any{"stat": "Armor"}, battleErr.GetMeta(wrapped))
		assert.True(t, errors.Is(wrapped, inner))

		wrapped.WithMeta("skill", "jab")
		assert.NotContains(t, inner.Meta, "skill")
	})

	t.Run("plain errors become unknown", func(t *testing.T) {
		wrapped := battleErr.Wrap(fmt.Errorf("disk full"), "saving")
		assert.Equal(t, battleErr.CodeUnknown, wrapped.Code)
		assert.Nil(t, battleErr.GetMeta(wrapped))
	})

	t.Run("code override", func(t *testing.T) {
		wrapped := battleErr.WrapWithCode(battleErr.NotFoundf("template"), battleErr.CodeValidation, "loading")
		assert.True(t, battleErr.IsValidation(wrapped))
		assert.False(t, battleErr.IsNotFound(wrapped))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, battleErr.Wrap(nil, "x"))
		assert.Nil(t, battleErr.Wrapf(nil, "x %d", 1))
		assert.Nil(t, battleErr.WrapWithCode(nil, battleErr.CodeInternal, "x"))
	})
}

func TestForeignErrors(t *testing.T) {
	err := fmt.Errorf("plain")
	assert.Equal(t, battleErr.CodeUnknown, battleErr.GetCode(err))
	assert.False(t, battleErr.IsNotFound(err))
	assert.Nil(t, battleErr.GetMeta(err))

	assert.True(t, battleErr.IsNotFound(fmt.Errorf("outer: %w", battleErr.NotFoundf("inner"))))
}
