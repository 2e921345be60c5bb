package outbound

import "context"

// Suggestion is one recipe proposal from the suggestion engine.
type Suggestion struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	ApproxTime  string   `json:"approx_time"`
	Steps       []string `json:"steps"`
}

// SuggestionRequest carries everything the engine needs to propose recipes.
type SuggestionRequest struct {
	Ingredients       []string
	DietaryPreference string
	Cuisine           string
	PreviousTitles    []string
}

// SuggestionEngine proposes up to three recipes from available ingredients.
// Implementations degrade to an empty slice on any upstream failure and
// never surface an error to callers.
type SuggestionEngine interface {
	Suggest(ctx context.Context, req SuggestionRequest) []Suggestion
}

// ImageExtractionEngine reads grocery item names out of a photo.
// Same degradation contract as SuggestionEngine: failures yield an empty
// slice, never an error.
type ImageExtractionEngine interface {
	ExtractItems(ctx context.Context, imageData []byte, contentType string) []string
}
