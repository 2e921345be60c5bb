package recipe

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipe(t *testing.T) {
	t.Run("ValidRecipe_ShouldCreateSuccessfully", func(t *testing.T) {
		r, err := NewRecipe(
			"Spaghetti Carbonara",
			"A classic pasta dish",
			[]string{"Spaghetti", "Eggs", "Guanciale"},
			"25 minutes",
			[]string{"Boil pasta", "Fry guanciale", "Combine"},
		)

		require.NoError(t, err)
		require.NotNil(t, r)

		assert.Equal(t, "Spaghetti Carbonara", r.Title())
		assert.Equal(t, 25, r.TotalTimeMinutes())
		assert.Equal(t, []string{"Boil pasta", "Fry guanciale", "Combine"}, r.Steps())
		assert.Equal(t, "Boil pasta\nFry guanciale\nCombine", r.Instructions())
		assert.NotZero(t, r.CreatedAt())
	})

	t.Run("EmptyTitle_ShouldReturnError", func(t *testing.T) {
		r, err := NewRecipe("", "desc", nil, "", []string{"Cook"})

		assert.Nil(t, r)
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("WhitespaceTitle_ShouldReturnError", func(t *testing.T) {
		r, err := NewRecipe("   ", "desc", nil, "", []string{"Cook"})

		assert.Nil(t, r)
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("TitleTooLong_ShouldReturnError", func(t *testing.T) {
		r, err := NewRecipe(strings.Repeat("a", 256), "desc", nil, "", []string{"Cook"})

		assert.Nil(t, r)
		assert.ErrorIs(t, err, ErrTitleTooLong)
	})

	t.Run("NoSteps_ShouldReturnError", func(t *testing.T) {
		r, err := NewRecipe("Toast", "desc", nil, "", nil)

		assert.Nil(t, r)
		assert.ErrorIs(t, err, ErrNoInstructions)
	})
}

func TestSteps(t *testing.T) {
	t.Run("EmptyInstructions_ReturnsNil", func(t *testing.T) {
		r := ReconstructRecipe(1, "Title", "", "", 30, nil, time.Time{})
		assert.Nil(t, r.Steps())
	})

	t.Run("RoundTripsThroughInstructionsText", func(t *testing.T) {
		r := ReconstructRecipe(1, "Title", "", "One\nTwo\nThree", 30, nil, time.Time{})
		assert.Equal(t, []string{"One", "Two", "Three"}, r.Steps())
	})
}

func TestParseApproxTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"PlainMinutes", "45 minutes", 45},
		{"MinutesAbbreviated", "30 min", 30},
		{"HoursAndMinutes_DigitsConcatenate", "1 hour 30 min", 130},
		{"NoDigits_FallsBack", "about an hour", FallbackTotalTimeMinutes},
		{"EmptyString_FallsBack", "", FallbackTotalTimeMinutes},
		{"BareNumber", "20", 20},
		{"ImplausiblyLarge_FallsBack", "17230948120938", FallbackTotalTimeMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseApproxTime(tt.input))
		})
	}
}
