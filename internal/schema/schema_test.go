package schema

import (
	"testing"

	apperrors "github.com/socialchef/chefgpt/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violationsOf(t *testing.T, err error) []apperrors.Violation {
	t.Helper()
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected AppError, got %T", err)
	require.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	return appErr.Violations
}

func TestRecipeRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        RecipeRequest
		wantField  string
		constraint string
	}{
		{"valid", RecipeRequest{Ingredients: "egg, rice"}, "", ""},
		{"valid with preferences", RecipeRequest{Ingredients: "egg", DietaryPreferences: "vegan"}, "", ""},
		{"missing ingredients", RecipeRequest{}, "ingredients", ConstraintRequired},
		{"blank ingredients", RecipeRequest{Ingredients: "  \t"}, "ingredients", ConstraintNotBlank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RecipeRequestSchema.Validate(tt.req)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.req, got)
				return
			}
			violations := violationsOf(t, err)
			require.Len(t, violations, 1)
			assert.Equal(t, tt.wantField, violations[0].Field)
			assert.Equal(t, tt.constraint, violations[0].Constraint)
		})
	}
}

func TestModificationRequest_EnumeratesAllFields(t *testing.T) {
	_, err := ModificationRequestSchema.Validate(ModificationRequest{})
	violations := violationsOf(t, err)

	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"recipe", "dietaryRestrictions"}, fields)
}

func TestRecipeResponse_Decode(t *testing.T) {
	t.Run("valid reply", func(t *testing.T) {
		got, err := RecipeResponseSchema.Decode([]byte(`{
			"title": "Garlic Chicken",
			"ingredients": ["chicken", "broccoli", "garlic"],
			"instructions": ["Chop.", "Fry.", "Serve."],
			"nutritionalInformation": "420 kcal"
		}`))
		require.NoError(t, err)
		assert.Equal(t, "Garlic Chicken", got.Title)
		assert.Equal(t, []string{"Chop.", "Fry.", "Serve."}, got.Instructions)
		assert.Equal(t, Text("420 kcal"), got.NutritionalInformation)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := RecipeResponseSchema.Decode([]byte(`{"ingredients": ["a"], "instructions": ["b"]}`))
		violations := violationsOf(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "title", violations[0].Field)
		assert.Equal(t, ConstraintRequired, violations[0].Constraint)
	})

	t.Run("empty instructions", func(t *testing.T) {
		_, err := RecipeResponseSchema.Decode([]byte(`{"title": "T", "ingredients": ["a"], "instructions": []}`))
		violations := violationsOf(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "instructions", violations[0].Field)
		assert.Equal(t, ConstraintMin, violations[0].Constraint)
	})

	t.Run("blank ingredient entry", func(t *testing.T) {
		_, err := RecipeResponseSchema.Decode([]byte(`{"title": "T", "ingredients": ["a", " "], "instructions": ["b"]}`))
		violations := violationsOf(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "ingredients[1]", violations[0].Field)
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := RecipeResponseSchema.Decode([]byte(`{"title": "T", "ingredients": "egg, rice", "instructions": ["b"]}`))
		violations := violationsOf(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "ingredients", violations[0].Field)
		assert.Equal(t, ConstraintShape, violations[0].Constraint)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := RecipeResponseSchema.Decode([]byte(`Here is your recipe!`))
		violations := violationsOf(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "$", violations[0].Field)
		assert.Equal(t, ConstraintShape, violations[0].Constraint)
	})

	t.Run("nutrition as object", func(t *testing.T) {
		got, err := RecipeResponseSchema.Decode([]byte(`{
			"title": "T", "ingredients": ["a"], "instructions": ["b"],
			"nutritionalInformation": {"protein": "25g", "calories": 320}
		}`))
		require.NoError(t, err)
		assert.Equal(t, Text("calories: 320, protein: 25g"), got.NutritionalInformation)
	})
}

func TestValidate_Idempotent(t *testing.T) {
	resp := RecipeResponse{
		Title:        "Fried Rice",
		Ingredients:  []string{"egg", "rice"},
		Instructions: []string{"Cook rice.", "Fry with egg."},
	}

	first, err := RecipeResponseSchema.Validate(resp)
	require.NoError(t, err)
	second, err := RecipeResponseSchema.Validate(first)
	require.NoError(t, err)

	assert.Equal(t, resp, first)
	assert.Equal(t, first, second)
}

func TestSuggestRecipesResponse_DivesIntoSuggestions(t *testing.T) {
	_, err := SuggestRecipesResponseSchema.Decode([]byte(`{"suggestions": [{"title": "Soup", "description": ""}]}`))
	violations := violationsOf(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "suggestions[0].description", violations[0].Field)
}

func TestFields(t *testing.T) {
	assert.Equal(t,
		[]string{"title", "ingredients", "instructions", "nutritionalInformation"},
		RecipeResponseSchema.Fields())
	assert.Equal(t, []string{"modifiedRecipe"}, ModificationResponseSchema.Fields())
}
