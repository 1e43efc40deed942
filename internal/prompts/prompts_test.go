package prompts

import (
	"strings"
	"testing"

	"github.com/socialchef/chefgpt/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecipe_Render(t *testing.T) {
	tests := []struct {
		name        string
		fields      map[string]string
		contains    []string
		notContains []string
	}{
		{
			name:        "empty dietary preferences",
			fields:      map[string]string{"ingredients": "egg, rice", "dietaryPreferences": ""},
			contains:    []string{"Ingredients: egg, rice"},
			notContains: []string{"Dietary Preferences:", "{{", "}}", "<no value>"},
		},
		{
			name:        "absent dietary preferences",
			fields:      map[string]string{"ingredients": "egg, rice"},
			contains:    []string{"egg, rice"},
			notContains: []string{"Dietary Preferences:", "<no value>"},
		},
		{
			name:     "with dietary preferences",
			fields:   map[string]string{"ingredients": "chicken, broccoli", "dietaryPreferences": "gluten-free"},
			contains: []string{"Ingredients: chicken, broccoli", "Dietary Preferences: gluten-free"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateRecipe.Render(tt.fields)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	_, err := GenerateRecipe.Render(map[string]string{"ingredients": "egg", "cuisine": "thai"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cuisine")

	_, err = SuggestRecipeModifications.Render(map[string]string{"recipe": "Pasta"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dietaryRestrictions")
}

func TestRender_Verbatim(t *testing.T) {
	got, err := SuggestRecipeModifications.Render(map[string]string{
		"recipe":              "Pasta with <cream> & \"parmesan\"",
		"dietaryRestrictions": "dairy-free",
	})
	require.NoError(t, err)
	assert.Contains(t, got, "Original Recipe: Pasta with <cream> & \"parmesan\"")
	assert.Contains(t, got, "Dietary Restrictions/Substitutions: dairy-free")
}

func TestRender_KeepsSurroundingWhitespace(t *testing.T) {
	got, err := GenerateRecipe.Render(map[string]string{
		"ingredients":        "  egg,  rice ",
		"dietaryPreferences": "   ",
	})
	require.NoError(t, err)
	assert.Contains(t, got, "Ingredients:   egg,  rice ")
	assert.NotContains(t, got, "Dietary Preferences:")

	_, err = GenerateRecipe.Render(map[string]string{"ingredients": " \t "})
	require.Error(t, err)
}

func TestTemplates_NameEveryOutputField(t *testing.T) {
	outputs := map[string][]string{
		GenerateRecipe.Name:             schema.RecipeResponseSchema.Fields(),
		SuggestRecipeModifications.Name: schema.ModificationResponseSchema.Fields(),
		SuggestRecipeName.Name:          schema.RecipeNameResponseSchema.Fields(),
		SuggestRecipes.Name:             schema.SuggestRecipesResponseSchema.Fields(),
		GenerateRecipeDetails.Name:      schema.RecipeDetailsResponseSchema.Fields(),
	}

	for _, tmpl := range All() {
		t.Run(tmpl.Name, func(t *testing.T) {
			fields := make(map[string]string, len(tmpl.Required))
			for _, name := range tmpl.Required {
				fields[name] = "x"
			}
			got, err := tmpl.Render(fields)
			require.NoError(t, err)

			format := got[strings.Index(got, "<OUTPUT_FORMAT>"):]
			want, ok := outputs[tmpl.Name]
			require.True(t, ok, "no output schema for %s", tmpl.Name)
			for _, field := range want {
				assert.Contains(t, format, `"`+field+`"`)
			}
		})
	}
}

func TestSystem(t *testing.T) {
	assert.Contains(t, System(), "<ROLE>")
	assert.Contains(t, System(), "JSON")
}
