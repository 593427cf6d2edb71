package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
)

func TestSameTag(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"led", "LED", true},
		{"Straße", "STRASSE", true},
		{"café", "café", true}, // precomposed vs combining accent
		{"led", "lead", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, sameTag(tt.a, tt.b))
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "café", normalizeTag("  café "))
}

func TestProduct_TagsFoldUnicode(t *testing.T) {
	p := reconstruct(clock.NewManual(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)))

	assert.NoError(t, p.AddTag("Straße"))
	assert.ErrorIs(t, p.AddTag("STRASSE"), ErrInvalidTag)
	assert.True(t, p.HasTag("strasse"))
	assert.NoError(t, p.RemoveTag("STRASSE"))
	assert.False(t, p.HasTag("Straße"))
}
