package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/cityops/esb-relay/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("non-nil error", func(t *testing.T) {
		err := WrapValidationError(apperrors.New("bad value"))
		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestKnackObjectID(t *testing.T) {
	rule := KnackObjectID{}

	assert.NoError(t, rule.Validate("object_75"))
	assert.NoError(t, rule.Validate("object_173"))
	assert.Error(t, rule.Validate("object_"))
	assert.Error(t, rule.Validate("view_1653"))
	assert.Error(t, rule.Validate(""))
	assert.Error(t, rule.Validate(75))
}

func TestKnackViewID(t *testing.T) {
	rule := KnackViewID{}

	assert.NoError(t, rule.Validate("view_1653"))
	assert.Error(t, rule.Validate("object_75"))
	assert.Error(t, rule.Validate("view1653"))
}

func TestKnackFieldID(t *testing.T) {
	rule := KnackFieldID{}

	assert.NoError(t, rule.Validate("field_1051"))
	assert.NoError(t, rule.Validate("id"))
	assert.Error(t, rule.Validate("field_"))
	assert.Error(t, rule.Validate("FIELD_1051"))
	assert.Error(t, rule.Validate("tbd"))
}

func TestActivityCode(t *testing.T) {
	rule := ActivityCode{}

	assert.NoError(t, rule.Validate("CLOIS001"))
	assert.NoError(t, rule.Validate("311FEEDB"))
	assert.NoError(t, rule.Validate("CONTACT"))
	assert.Error(t, rule.Validate(""))
	assert.Error(t, rule.Validate("clois001"))
	assert.Error(t, rule.Validate("TBD"))
	assert.Error(t, rule.Validate("A-VERY-LONG-PLACEHOLDER"))
}
