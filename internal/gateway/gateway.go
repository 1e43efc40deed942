package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/socialchef/chefgpt/internal/llm"
	"github.com/socialchef/chefgpt/internal/prompts"
	"github.com/socialchef/chefgpt/internal/schema"
)

// Gateway bundles every recipe capability behind one provider.
type Gateway struct {
	Recipe        *Capability[schema.RecipeRequest, schema.RecipeResponse]
	Modifications *Capability[schema.ModificationRequest, schema.ModificationResponse]
	RecipeName    *Capability[schema.RecipeNameRequest, schema.RecipeNameResponse]
	Suggestions   *Capability[schema.SuggestRecipesRequest, schema.SuggestRecipesResponse]
	Details       *Capability[schema.RecipeDetailsRequest, schema.RecipeDetailsResponse]

	provider llm.Provider
}

// New wires the capabilities to provider. timeout bounds each model call;
// zero leaves it to the caller's context.
func New(provider llm.Provider, timeout time.Duration) *Gateway {
	return &Gateway{
		provider: provider,
		Recipe: &Capability[schema.RecipeRequest, schema.RecipeResponse]{
			Name:     "generate-recipe",
			Input:    schema.RecipeRequestSchema,
			Output:   schema.RecipeResponseSchema,
			Template: prompts.GenerateRecipe,
			Fields: func(in schema.RecipeRequest) map[string]string {
				return map[string]string{
					"ingredients":        in.Ingredients,
					"dietaryPreferences": in.DietaryPreferences,
				}
			},
			provider: provider,
			timeout:  timeout,
		},
		Modifications: &Capability[schema.ModificationRequest, schema.ModificationResponse]{
			Name:     "suggest-recipe-modifications",
			Input:    schema.ModificationRequestSchema,
			Output:   schema.ModificationResponseSchema,
			Template: prompts.SuggestRecipeModifications,
			Fields: func(in schema.ModificationRequest) map[string]string {
				return map[string]string{
					"recipe":              in.Recipe,
					"dietaryRestrictions": in.DietaryRestrictions,
				}
			},
			provider: provider,
			timeout:  timeout,
		},
		RecipeName: &Capability[schema.RecipeNameRequest, schema.RecipeNameResponse]{
			Name:     "suggest-recipe-name",
			Input:    schema.RecipeNameRequestSchema,
			Output:   schema.RecipeNameResponseSchema,
			Template: prompts.SuggestRecipeName,
			Fields: func(in schema.RecipeNameRequest) map[string]string {
				return map[string]string{
					"ingredients": in.Ingredients,
					"description": in.Description,
				}
			},
			provider: provider,
			timeout:  timeout,
		},
		Suggestions: &Capability[schema.SuggestRecipesRequest, schema.SuggestRecipesResponse]{
			Name:     "suggest-recipes",
			Input:    schema.SuggestRecipesRequestSchema,
			Output:   schema.SuggestRecipesResponseSchema,
			Template: prompts.SuggestRecipes,
			Fields: func(in schema.SuggestRecipesRequest) map[string]string {
				return map[string]string{
					"ingredients":        in.Ingredients,
					"dietaryPreferences": in.DietaryPreferences,
				}
			},
			provider: provider,
			timeout:  timeout,
		},
		Details: &Capability[schema.RecipeDetailsRequest, schema.RecipeDetailsResponse]{
			Name:     "generate-recipe-details",
			Input:    schema.RecipeDetailsRequestSchema,
			Output:   schema.RecipeDetailsResponseSchema,
			Template: prompts.GenerateRecipeDetails,
			Fields: func(in schema.RecipeDetailsRequest) map[string]string {
				return map[string]string{
					"recipeName":         in.RecipeName,
					"dietaryPreferences": in.DietaryPreferences,
				}
			},
			provider: provider,
			timeout:  timeout,
		},
	}
}

// Provider returns the model provider behind the gateway.
func (g *Gateway) Provider() llm.Provider {
	return g.provider
}

func (g *Gateway) GenerateRecipe(ctx context.Context, in schema.RecipeRequest) (schema.RecipeResponse, error) {
	return g.Recipe.Generate(ctx, in)
}

func (g *Gateway) SuggestRecipeModifications(ctx context.Context, in schema.ModificationRequest) (schema.ModificationResponse, error) {
	return g.Modifications.Generate(ctx, in)
}

func (g *Gateway) SuggestRecipeName(ctx context.Context, in schema.RecipeNameRequest) (schema.RecipeNameResponse, error) {
	return g.RecipeName.Generate(ctx, in)
}

func (g *Gateway) SuggestRecipes(ctx context.Context, in schema.SuggestRecipesRequest) (schema.SuggestRecipesResponse, error) {
	return g.Suggestions.Generate(ctx, in)
}

func (g *Gateway) GenerateRecipeDetails(ctx context.Context, in schema.RecipeDetailsRequest) (schema.RecipeDetailsResponse, error) {
	return g.Details.Generate(ctx, in)
}

// extractJSON returns the first complete JSON object in a model reply,
// dropping markdown fences and any prose around it, including prose that
// contains braces. A reply with no decodable object is returned trimmed so
// the schema decoder reports it.
func extractJSON(reply string) string {
	reply = strings.TrimSpace(reply)
	for offset := 0; offset < len(reply); {
		start := strings.IndexByte(reply[offset:], '{')
		if start == -1 {
			break
		}
		start += offset

		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(reply[start:])).Decode(&raw); err == nil {
			return string(raw)
		}
		offset = start + 1
	}

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || start > end {
		return reply
	}
	return reply[start : end+1]
}
