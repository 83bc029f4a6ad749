package sheets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilaca/bounty-board/internal/source"
)

func TestDefaultEnvelope_MatchesQueryPrefix(t *testing.T) {
	assert.Len(t, []rune(realPrefix), DefaultEnvelope.PrefixLen)
}

// TestUnwrap_RoundTrip tests that prefix + document + suffix yields the document.
func TestUnwrap_RoundTrip(t *testing.T) {
	// Arrange
	doc := `{"table":{"rows":[{"c":[{"v":"x"}]}]}}`
	payload := strings.Repeat("p", 47) + doc + "s;"

	// Act
	got, err := DefaultEnvelope.Unwrap(payload)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

// TestUnwrap_CountsCharacters tests that multi-byte characters count once.
func TestUnwrap_CountsCharacters(t *testing.T) {
	// Arrange
	doc := `{"title":"ünïcødé"}`
	payload := strings.Repeat("é", 47) + doc + "ü)"

	// Act
	got, err := DefaultEnvelope.Unwrap(payload)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

// TestUnwrap_ShortPrefix tests that a prefix shorter than expected is a format error.
func TestUnwrap_ShortPrefix(t *testing.T) {
	// Arrange
	payload := strings.Repeat("p", 46) + `{"table":{"rows":[]}}` + ");"

	// Act
	_, err := DefaultEnvelope.Unwrap(payload)

	// Assert
	assert.ErrorIs(t, err, source.ErrDataFormat)
}

func TestUnwrap_TooShort(t *testing.T) {
	_, err := DefaultEnvelope.Unwrap("short")

	assert.ErrorIs(t, err, source.ErrDataFormat)
}

func TestUnwrap_CustomLengths(t *testing.T) {
	envelope := Envelope{PrefixLen: 3, SuffixLen: 0}

	got, err := envelope.Unwrap(`)]}[1,2]`)

	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, got)
}

// TestUnwrap_InvalidLengths tests that negative lengths are a format error, not a panic.
func TestUnwrap_InvalidLengths(t *testing.T) {
	tests := []struct {
		name     string
		envelope Envelope
	}{
		{"negative prefix", Envelope{PrefixLen: -1, SuffixLen: 2}},
		{"negative suffix", Envelope{PrefixLen: 1, SuffixLen: -2}},
		{"both negative", Envelope{PrefixLen: -3, SuffixLen: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = tt.envelope.Unwrap(`x{"table":{"rows":[]}});`)
			})

			assert.ErrorIs(t, err, source.ErrDataFormat)
		})
	}
}

func TestUnwrap_ZeroLengths(t *testing.T) {
	got, err := Envelope{}.Unwrap(`{"table":{"rows":[]}}`)

	require.NoError(t, err)
	assert.Equal(t, `{"table":{"rows":[]}}`, got)
}
