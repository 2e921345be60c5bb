// Package gemini implements the suggestion and image extraction engines
// against Google's Gemini API in JSON mode.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/stockchef/stockchef/internal/infrastructure/config"
	"github.com/stockchef/stockchef/internal/ports/outbound"
)

const suggestionSystemInstruction = "You are an expert chef. You know all the recipes in the world. " +
	"Given the ingredient list, dietary preference and cuisine preference, you can suggest any recipe " +
	"keeping in mind these things. You can also change recipes according to available ingredients and dietary preference."

const suggestionPrompt = `You will be given a list of ingredients, dietary preferences (vegan, vegetarian [dairy but no eggs], halal, non-veg, etc.) and preferred cuisine (Indian, Mexican, Japanese, etc.). You will also have previously made recipes. Return three recipes. Assume the basic things such as water, salt, sugar, ginger, spices and condiments to be available. Two recipes aligning to cuisine preference, one can be a random cuisine. Try not to repeat the previous recipes. If you can make a recipe out of the ingredients but cannot adhere to the cuisine preference, still return it but strictly align to the dietary preference. If you cannot return three recipes, return as many as you can generate, a maximum of three. You do not need to utilize all the available ingredients.

Return JSON with:
1) status: 200 if you can generate at least one recipe, 400 if you cannot generate any or the ingredient list has nothing.
2) recipes: a list where each entry has:
   - status: 200 if generated, 400 if not (then keep all other fields empty)
   - recipe_name
   - description: a short description
   - ingredients: only ingredient names from the provided list, no quantities or units
   - approx_time: approximate time to make
   - steps: the actual step by step recipe in extreme detail`

const extractionPrompt = `You will be given an image. You need to extract all the food items from the image. The image can be a fridge, shelves or straight up food. Extract all the food items from the image and return them. The output JSON should have two things.
1. status: 200 if food found, 404 if no food found
2. items: list of items

If no food is found the items list should be empty.
Just return the items, no quantity, unit etc, just the items.`

// Client talks to the Gemini API for both engines. Every failure path
// degrades to an empty result; callers never see an error.
type Client struct {
	client      *genai.Client
	model       string
	visionModel string
	timeout     time.Duration
	logger      *zap.Logger
}

// NewClient creates a Gemini client from configuration
func NewClient(cfg *config.Config, logger *zap.Logger) (*Client, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:      client,
		model:       cfg.AI.Model,
		visionModel: cfg.AI.VisionModel,
		timeout:     cfg.AI.RequestTimeout,
		logger:      logger.Named("gemini"),
	}, nil
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

type suggestionPayload struct {
	Ingredients       []string `json:"ingredients"`
	DietaryPreference string   `json:"dietary_preference"`
	CuisinePreference string   `json:"cuisine_preference"`
	PreviousRecipes   []string `json:"previous_recipes"`
}

// Suggest returns up to three recipe proposals for the request
func (c *Client) Suggest(ctx context.Context, req outbound.SuggestionRequest) []outbound.Suggestion {
	payload, err := json.Marshal(suggestionPayload{
		Ingredients:       req.Ingredients,
		DietaryPreference: req.DietaryPreference,
		CuisinePreference: req.Cuisine,
		PreviousRecipes:   req.PreviousTitles,
	})
	if err != nil {
		c.logger.Error("Failed to marshal suggestion payload", zap.Error(err))
		return nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(suggestionPrompt, genai.RoleUser),
		genai.NewContentFromText(string(payload), genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(suggestionSystemInstruction, genai.RoleUser),
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(reqCtx, c.model, contents, cfg)
	if err != nil {
		c.logger.Error("Suggestion request failed", zap.Error(err))
		return nil
	}

	suggestions := ParseSuggestions([]byte(resp.Text()))
	c.logger.Info("Generated suggestions", zap.Int("count", len(suggestions)))
	return suggestions
}

// ExtractItems returns the food item names found in the image
func (c *Client) ExtractItems(ctx context.Context, imageData []byte, contentType string) []string {
	if contentType == "" {
		contentType = "image/jpeg"
	}

	contents := []*genai.Content{
		genai.NewContentFromText(extractionPrompt, genai.RoleUser),
		genai.NewContentFromBytes(imageData, contentType, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(reqCtx, c.visionModel, contents, cfg)
	if err != nil {
		c.logger.Error("Image extraction request failed", zap.Error(err))
		return nil
	}

	items := ParseExtractedItems([]byte(resp.Text()))
	c.logger.Info("Extracted items from image", zap.Int("count", len(items)))
	return items
}

type suggestionResponse struct {
	Status  int                 `json:"status"`
	Recipes []suggestedRecipeTO `json:"recipes"`
}

type suggestedRecipeTO struct {
	Status      int      `json:"status"`
	RecipeName  string   `json:"recipe_name"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	ApproxTime  string   `json:"approx_time"`
	Steps       []string `json:"steps"`
}

// ParseSuggestions reads the model's JSON suggestion response. Unparseable
// payloads, a top-level 400 status and non-viable entries all reduce to
// fewer or zero suggestions.
func ParseSuggestions(data []byte) []outbound.Suggestion {
	var resp suggestionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil
	}

	if resp.Status != 200 {
		return nil
	}

	suggestions := make([]outbound.Suggestion, 0, len(resp.Recipes))
	for _, r := range resp.Recipes {
		if r.Status != 200 {
			continue
		}
		if strings.TrimSpace(r.RecipeName) == "" || len(r.Steps) == 0 {
			continue
		}
		suggestions = append(suggestions, outbound.Suggestion{
			Name:        r.RecipeName,
			Description: r.Description,
			Ingredients: r.Ingredients,
			ApproxTime:  r.ApproxTime,
			Steps:       r.Steps,
		})
	}

	return suggestions
}

type extractionResponse struct {
	// The vision prompt asks for a string status, but the model sometimes
	// answers with a number.
	Status json.RawMessage `json:"status"`
	Items  []string        `json:"items"`
}

// ParseExtractedItems reads the model's JSON extraction response, dropping
// blank entries. Unparseable payloads yield nil.
func ParseExtractedItems(data []byte) []string {
	var resp extractionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil
	}

	items := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		items = append(items, item)
	}

	return items
}
