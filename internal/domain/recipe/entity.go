// Package recipe contains the recipe aggregate and the history retention
// rules applied when users save and cook recipes.
package recipe

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// DefaultHistoryCap is the number of history entries retained per user
// unless overridden by configuration.
const DefaultHistoryCap = 3

// FallbackTotalTimeMinutes is used when an approximate-time string from the
// suggestion engine carries no digits at all.
const FallbackTotalTimeMinutes = 30

// Recipe is a globally shared entity: it is created when the first user
// saves it and owned jointly by every history entry that references it.
type Recipe struct {
	id               uint
	title            string
	description      string
	instructions     string
	totalTimeMinutes int
	ingredients      []string
	createdAt        time.Time
}

// NewRecipe creates a recipe from a saved suggestion. Steps are stored as
// one instructions text, one step per line, and the approximate time is
// reduced to minutes.
func NewRecipe(title, description string, ingredients []string, approxTime string, steps []string) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	if len(steps) == 0 {
		return nil, ErrNoInstructions
	}

	return &Recipe{
		title:            title,
		description:      description,
		instructions:     strings.Join(steps, "\n"),
		totalTimeMinutes: ParseApproxTime(approxTime),
		ingredients:      ingredients,
		createdAt:        time.Now(),
	}, nil
}

// ReconstructRecipe rebuilds a recipe from persisted state.
func ReconstructRecipe(id uint, title, description, instructions string, totalTimeMinutes int, ingredients []string, createdAt time.Time) *Recipe {
	return &Recipe{
		id:               id,
		title:            title,
		description:      description,
		instructions:     instructions,
		totalTimeMinutes: totalTimeMinutes,
		ingredients:      ingredients,
		createdAt:        createdAt,
	}
}

// ID returns the recipe's identifier
func (r *Recipe) ID() uint {
	return r.id
}

// SetID assigns the store-generated identifier after the first insert.
func (r *Recipe) SetID(id uint) {
	r.id = id
}

// Title returns the recipe's title
func (r *Recipe) Title() string {
	return r.title
}

// Description returns the recipe's short description
func (r *Recipe) Description() string {
	return r.description
}

// Instructions returns the instructions text, one step per line
func (r *Recipe) Instructions() string {
	return r.instructions
}

// Steps returns the instructions split back into individual steps
func (r *Recipe) Steps() []string {
	if r.instructions == "" {
		return nil
	}
	return strings.Split(r.instructions, "\n")
}

// TotalTimeMinutes returns the approximate preparation time in minutes
func (r *Recipe) TotalTimeMinutes() int {
	return r.totalTimeMinutes
}

// Ingredients returns the ingredient names in insertion order
func (r *Recipe) Ingredients() []string {
	return r.ingredients
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// HistoryEntry links a user to a recipe they saved or cooked.
// Its lifecycle is {absent -> uncooked -> cooked}; cooked never reverts and
// the entry disappears only through retention eviction.
type HistoryEntry struct {
	ID        uint
	UserID    uuid.UUID
	RecipeID  uint
	Cooked    bool
	CreatedAt time.Time
}

// ParseApproxTime reduces a free-text duration such as "45 minutes" or
// "about 1 hour 30 min" to the digits it contains. The suggestion engine is
// prompted for minute values, so concatenated digits are treated as minutes;
// text with no digits falls back to FallbackTotalTimeMinutes.
func ParseApproxTime(approxTime string) int {
	var digits strings.Builder
	for _, r := range approxTime {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return FallbackTotalTimeMinutes
	}

	minutes := 0
	for _, r := range digits.String() {
		minutes = minutes*10 + int(r-'0')
		if minutes > 1<<20 {
			// Garbage input such as a timestamp; not a plausible duration.
			return FallbackTotalTimeMinutes
		}
	}

	return minutes
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if len(title) > 255 {
		return ErrTitleTooLong
	}
	return nil
}
