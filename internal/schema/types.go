package schema

// RecipeRequest is the form input for generating a recipe.
type RecipeRequest struct {
	// Ingredients is a comma-separated list of what the user has on hand.
	Ingredients        string `json:"ingredients" validate:"notblank"`
	DietaryPreferences string `json:"dietaryPreferences,omitempty"`
}

// RecipeResponse is a generated recipe. Instruction order is significant.
type RecipeResponse struct {
	Title                  string   `json:"title" validate:"notblank"`
	Ingredients            []string `json:"ingredients" validate:"required,min=1,dive,notblank"`
	Instructions           []string `json:"instructions" validate:"required,min=1,dive,notblank"`
	NutritionalInformation Text     `json:"nutritionalInformation,omitempty"`
}

// ModificationRequest asks for an existing recipe to be adapted.
type ModificationRequest struct {
	Recipe              string `json:"recipe" validate:"notblank"`
	DietaryRestrictions string `json:"dietaryRestrictions" validate:"notblank"`
}

type ModificationResponse struct {
	ModifiedRecipe string `json:"modifiedRecipe" validate:"notblank"`
}

type RecipeNameRequest struct {
	Ingredients string `json:"ingredients" validate:"notblank"`
	Description string `json:"description,omitempty"`
}

type RecipeNameResponse struct {
	RecipeName string `json:"recipeName" validate:"notblank"`
}

type SuggestRecipesRequest struct {
	Ingredients        string `json:"ingredients" validate:"notblank"`
	DietaryPreferences string `json:"dietaryPreferences,omitempty"`
}

// RecipeSuggestion is one entry of a SuggestRecipesResponse.
type RecipeSuggestion struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
}

type SuggestRecipesResponse struct {
	Suggestions []RecipeSuggestion `json:"suggestions" validate:"required,min=1,dive"`
}

type RecipeDetailsRequest struct {
	RecipeName         string `json:"recipeName" validate:"notblank"`
	DietaryPreferences string `json:"dietaryPreferences,omitempty"`
}

type RecipeDetailsResponse struct {
	Ingredients            []string `json:"ingredients" validate:"required,min=1,dive,notblank"`
	Instructions           []string `json:"instructions" validate:"required,min=1,dive,notblank"`
	PrepTime               Text     `json:"prepTime,omitempty"`
	CookTime               Text     `json:"cookTime,omitempty"`
	Servings               Text     `json:"servings,omitempty"`
	NutritionalInformation Text     `json:"nutritionalInformation,omitempty"`
}

var (
	RecipeRequestSchema          = New[RecipeRequest]("generate-recipe.input")
	RecipeResponseSchema         = New[RecipeResponse]("generate-recipe.output")
	ModificationRequestSchema    = New[ModificationRequest]("suggest-recipe-modifications.input")
	ModificationResponseSchema   = New[ModificationResponse]("suggest-recipe-modifications.output")
	RecipeNameRequestSchema      = New[RecipeNameRequest]("suggest-recipe-name.input")
	RecipeNameResponseSchema     = New[RecipeNameResponse]("suggest-recipe-name.output")
	SuggestRecipesRequestSchema  = New[SuggestRecipesRequest]("suggest-recipes.input")
	SuggestRecipesResponseSchema = New[SuggestRecipesResponse]("suggest-recipes.output")
	RecipeDetailsRequestSchema   = New[RecipeDetailsRequest]("generate-recipe-details.input")
	RecipeDetailsResponseSchema  = New[RecipeDetailsResponse]("generate-recipe-details.output")
)
