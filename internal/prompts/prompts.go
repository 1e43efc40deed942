// Package prompts holds the natural-language templates sent to the
// generation model, one per capability.
package prompts

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// Template is a named prompt with placeholders filled per request.
type Template struct {
	Name     string
	Required []string
	Optional []string

	tmpl *template.Template
}

func newTemplate(name, text string, required, optional []string) *Template {
	return &Template{
		Name:     name,
		Required: required,
		Optional: optional,
		tmpl:     template.Must(template.New(name).Option("missingkey=error").Parse(text)),
	}
}

// Render substitutes fields into the template verbatim, surrounding
// whitespace included. Optional fields that are absent or blank are left out
// of the prompt entirely. A field the template does not declare, or a blank
// required field, is an error.
func (t *Template) Render(fields map[string]string) (string, error) {
	data := make(map[string]string, len(t.Required)+len(t.Optional))
	for _, name := range t.Optional {
		data[name] = ""
	}

	var unknown []string
	for name, value := range fields {
		if !t.declares(name) {
			unknown = append(unknown, name)
			continue
		}
		if strings.TrimSpace(value) == "" {
			value = ""
		}
		data[name] = value
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return "", fmt.Errorf("template %s: unknown placeholder(s): %s", t.Name, strings.Join(unknown, ", "))
	}

	for _, name := range t.Required {
		if data[name] == "" {
			return "", fmt.Errorf("template %s: missing required field %q", t.Name, name)
		}
	}

	var sb strings.Builder
	if err := t.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("template %s: %w", t.Name, err)
	}
	return sb.String(), nil
}

func (t *Template) declares(name string) bool {
	for _, n := range t.Required {
		if n == name {
			return true
		}
	}
	for _, n := range t.Optional {
		if n == name {
			return true
		}
	}
	return false
}

var (
	GenerateRecipe = newTemplate("generate-recipe", generateRecipeText,
		[]string{"ingredients"}, []string{"dietaryPreferences"})

	SuggestRecipeModifications = newTemplate("suggest-recipe-modifications", suggestModificationsText,
		[]string{"recipe", "dietaryRestrictions"}, nil)

	SuggestRecipeName = newTemplate("suggest-recipe-name", suggestNameText,
		[]string{"ingredients"}, []string{"description"})

	SuggestRecipes = newTemplate("suggest-recipes", suggestRecipesText,
		[]string{"ingredients"}, []string{"dietaryPreferences"})

	GenerateRecipeDetails = newTemplate("generate-recipe-details", recipeDetailsText,
		[]string{"recipeName"}, []string{"dietaryPreferences"})
)

// All returns every capability template.
func All() []*Template {
	return []*Template{
		GenerateRecipe,
		SuggestRecipeModifications,
		SuggestRecipeName,
		SuggestRecipes,
		GenerateRecipeDetails,
	}
}

// System returns the system prompt shared by every capability.
func System() string {
	return systemSection
}
