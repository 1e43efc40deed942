package main

import (
	"strings"

	"github.com/socialchef/chefgpt/internal/schema"
	"github.com/spf13/cobra"
)

func newGenerateCmd(c *cli) *cobra.Command {
	var in schema.RecipeRequest
	cmd := &cobra.Command{
		Use:   "generate [ingredients...]",
		Short: "Generate a full recipe from ingredients",
		Example: `  chefgpt generate chicken, broccoli, garlic
  chefgpt generate --ingredients "tofu, rice" --diet vegan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Ingredients == "" {
				in.Ingredients = strings.Join(args, " ")
			}
			return run(cmd, c, c.gw.GenerateRecipe, in, renderRecipe)
		},
	}
	cmd.Flags().StringVarP(&in.Ingredients, "ingredients", "i", "", "comma-separated ingredients")
	cmd.Flags().StringVarP(&in.DietaryPreferences, "diet", "d", "", "dietary preferences")
	return cmd
}

func newModifyCmd(c *cli) *cobra.Command {
	var (
		in   schema.ModificationRequest
		file string
	)
	cmd := &cobra.Command{
		Use:   "modify",
		Short: "Adapt a recipe to dietary restrictions",
		Example: `  chefgpt modify --recipe "Creamy garlic pasta with parmesan" --restrictions dairy-free
  chefgpt modify --file lasagna.txt --restrictions "gluten-free"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				recipe, err := readInput(cmd, file)
				if err != nil {
					return err
				}
				in.Recipe = recipe
			}
			return run(cmd, c, c.gw.SuggestRecipeModifications, in, renderModification)
		},
	}
	cmd.Flags().StringVarP(&in.Recipe, "recipe", "r", "", "recipe text to modify")
	cmd.Flags().StringVarP(&file, "file", "f", "", `read the recipe from a file ("-" for stdin)`)
	cmd.Flags().StringVar(&in.DietaryRestrictions, "restrictions", "", "dietary restrictions or substitutions")
	cmd.MarkFlagsMutuallyExclusive("recipe", "file")
	return cmd
}

func newNameCmd(c *cli) *cobra.Command {
	var in schema.RecipeNameRequest
	cmd := &cobra.Command{
		Use:   "name [ingredients...]",
		Short: "Suggest a name for a dish",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Ingredients == "" {
				in.Ingredients = strings.Join(args, " ")
			}
			return run(cmd, c, c.gw.SuggestRecipeName, in, renderName)
		},
	}
	cmd.Flags().StringVarP(&in.Ingredients, "ingredients", "i", "", "comma-separated ingredients")
	cmd.Flags().StringVar(&in.Description, "description", "", "short description of the dish")
	return cmd
}

func newSuggestCmd(c *cli) *cobra.Command {
	var in schema.SuggestRecipesRequest
	cmd := &cobra.Command{
		Use:   "suggest [ingredients...]",
		Short: "List recipe ideas for ingredients",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Ingredients == "" {
				in.Ingredients = strings.Join(args, " ")
			}
			return run(cmd, c, c.gw.SuggestRecipes, in, renderSuggestions)
		},
	}
	cmd.Flags().StringVarP(&in.Ingredients, "ingredients", "i", "", "comma-separated ingredients")
	cmd.Flags().StringVarP(&in.DietaryPreferences, "diet", "d", "", "dietary preferences")
	return cmd
}

func newDetailsCmd(c *cli) *cobra.Command {
	var in schema.RecipeDetailsRequest
	cmd := &cobra.Command{
		Use:   "details <recipe name>",
		Short: "Expand a recipe name into ingredients and steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.RecipeName = strings.Join(args, " ")
			return run(cmd, c, c.gw.GenerateRecipeDetails, in, renderDetails)
		},
	}
	cmd.Flags().StringVarP(&in.DietaryPreferences, "diet", "d", "", "dietary preferences")
	return cmd
}
