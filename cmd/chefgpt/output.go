package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/socialchef/chefgpt/internal/errors"
	"github.com/socialchef/chefgpt/internal/schema"
	"github.com/spf13/cobra"
)

func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read recipe: %w", err)
	}
	return string(data), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printError(w io.Writer, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Error: %s\n", appErr.Message)
	for _, v := range appErr.Violations {
		fmt.Fprintf(w, "  - %s\n", v)
	}
	if appErr.RecoverySuggestion() != "" {
		fmt.Fprintln(w, appErr.RecoverySuggestion())
	}
}

func writeList(w io.Writer, heading string, items []string, numbered bool) {
	fmt.Fprintf(w, "\n%s\n", heading)
	for i, item := range items {
		if numbered {
			fmt.Fprintf(w, "  %d. %s\n", i+1, item)
		} else {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}
}

func writeOptional(w io.Writer, label string, value schema.Text) {
	if value != "" {
		fmt.Fprintf(w, "%s: %s\n", label, value)
	}
}

func renderRecipe(cmd *cobra.Command, r schema.RecipeResponse) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, r.Title)
	fmt.Fprintln(w, strings.Repeat("=", len(r.Title)))
	writeList(w, "Ingredients", r.Ingredients, false)
	writeList(w, "Instructions", r.Instructions, true)
	if r.NutritionalInformation != "" {
		fmt.Fprintln(w)
		writeOptional(w, "Nutrition", r.NutritionalInformation)
	}
}

func renderModification(cmd *cobra.Command, r schema.ModificationResponse) {
	fmt.Fprintln(cmd.OutOrStdout(), r.ModifiedRecipe)
}

func renderName(cmd *cobra.Command, r schema.RecipeNameResponse) {
	fmt.Fprintln(cmd.OutOrStdout(), r.RecipeName)
}

func renderSuggestions(cmd *cobra.Command, r schema.SuggestRecipesResponse) {
	w := cmd.OutOrStdout()
	for i, s := range r.Suggestions {
		fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, s.Title, s.Description)
	}
}

func renderDetails(cmd *cobra.Command, r schema.RecipeDetailsResponse) {
	w := cmd.OutOrStdout()
	writeOptional(w, "Prep time", r.PrepTime)
	writeOptional(w, "Cook time", r.CookTime)
	writeOptional(w, "Servings", r.Servings)
	writeList(w, "Ingredients", r.Ingredients, false)
	writeList(w, "Instructions", r.Instructions, true)
	if r.NutritionalInformation != "" {
		fmt.Fprintln(w)
		writeOptional(w, "Nutrition", r.NutritionalInformation)
	}
}
