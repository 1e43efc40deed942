// Command chefgpt runs the recipe capabilities from a terminal.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := newRootCmd(defaultCLI()).Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
