package changetrack

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	nonEmpty := func(item string, _ iter.Seq[string]) (bool, string) {
		if item == "" {
			return false, "must not be empty"
		}
		return true, ""
	}

	tests := []struct {
		name    string
		pred    ValidationPredicate[string]
		item    string
		wantErr string
	}{
		{name: "nil predicate accepts", pred: nil, item: ""},
		{name: "accepted item", pred: nonEmpty, item: "x"},
		{name: "rejected item", pred: nonEmpty, item: "", wantErr: "validation failed for : must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.pred, tt.item, nil)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestValidationError_NoReason(t *testing.T) {
	err := &ValidationError{Item: 42}
	assert.Equal(t, "validation failed for 42", err.Error())
}
