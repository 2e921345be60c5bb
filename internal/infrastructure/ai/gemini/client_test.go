package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestions(t *testing.T) {
	t.Run("parses viable recipes", func(t *testing.T) {
		data := []byte(`{
			"status": 200,
			"recipes": [
				{
					"status": 200,
					"recipe_name": "Chana Masala",
					"description": "A classic Indian chickpea curry.",
					"ingredients": ["Chickpeas", "Tomato", "Onion"],
					"approx_time": "45 minutes",
					"steps": ["Soak chickpeas.", "Cook the curry."]
				},
				{
					"status": 200,
					"recipe_name": "Lentil Soup",
					"description": "Hearty soup.",
					"ingredients": ["Lentils", "Carrot"],
					"approx_time": "50 minutes",
					"steps": ["Chop vegetables.", "Simmer."]
				}
			]
		}`)

		suggestions := ParseSuggestions(data)
		require.Len(t, suggestions, 2)
		assert.Equal(t, "Chana Masala", suggestions[0].Name)
		assert.Equal(t, []string{"Chickpeas", "Tomato", "Onion"}, suggestions[0].Ingredients)
		assert.Equal(t, "45 minutes", suggestions[0].ApproxTime)
		assert.Len(t, suggestions[0].Steps, 2)
	})

	t.Run("skips non-viable entries", func(t *testing.T) {
		data := []byte(`{
			"status": 200,
			"recipes": [
				{"status": 400, "recipe_name": "", "ingredients": [], "steps": []},
				{
					"status": 200,
					"recipe_name": "Black Bean Tacos",
					"description": "Easy tacos.",
					"ingredients": ["Black Beans"],
					"approx_time": "30 minutes",
					"steps": ["Cook beans.", "Assemble tacos."]
				}
			]
		}`)

		suggestions := ParseSuggestions(data)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "Black Bean Tacos", suggestions[0].Name)
	})

	t.Run("skips entries with no steps even when status is 200", func(t *testing.T) {
		data := []byte(`{
			"status": 200,
			"recipes": [
				{"status": 200, "recipe_name": "Mystery Dish", "ingredients": ["Rice"], "steps": []}
			]
		}`)

		assert.Empty(t, ParseSuggestions(data))
	})

	t.Run("top-level 400 yields no suggestions", func(t *testing.T) {
		data := []byte(`{"status": 400, "recipes": []}`)
		assert.Empty(t, ParseSuggestions(data))
	})

	t.Run("malformed payload yields no suggestions", func(t *testing.T) {
		assert.Empty(t, ParseSuggestions([]byte("I'm sorry, I cannot help with that.")))
		assert.Empty(t, ParseSuggestions([]byte(`{"status": 200, "recipes": "oops"}`)))
		assert.Empty(t, ParseSuggestions(nil))
	})
}

func TestParseExtractedItems(t *testing.T) {
	t.Run("parses items with numeric status", func(t *testing.T) {
		data := []byte(`{"status": 200, "items": ["Milk", "Eggs", "Spinach"]}`)
		assert.Equal(t, []string{"Milk", "Eggs", "Spinach"}, ParseExtractedItems(data))
	})

	t.Run("parses items with string status", func(t *testing.T) {
		data := []byte(`{"status": "200", "items": ["Tomato"]}`)
		assert.Equal(t, []string{"Tomato"}, ParseExtractedItems(data))
	})

	t.Run("no food detected yields empty list", func(t *testing.T) {
		data := []byte(`{"status": "404", "items": []}`)
		assert.Empty(t, ParseExtractedItems(data))
	})

	t.Run("drops blank entries", func(t *testing.T) {
		data := []byte(`{"status": 200, "items": ["Cheese", "  ", ""]}`)
		assert.Equal(t, []string{"Cheese"}, ParseExtractedItems(data))
	})

	t.Run("malformed payload yields nil", func(t *testing.T) {
		assert.Nil(t, ParseExtractedItems([]byte("not json")))
	})
}
