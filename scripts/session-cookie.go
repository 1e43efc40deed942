package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/socialchef/chefgpt/internal/middleware"
)

// Prints a session cookie for poking the form endpoints with curl:
//
//	curl -b "$(SESSION_SECRET=secret go run scripts/session-cookie.go)" localhost:8080/api/session
func main() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: SESSION_SECRET environment variable must be set")
		fmt.Fprintln(os.Stderr, "Usage: SESSION_SECRET=secret go run scripts/session-cookie.go [session-id]")
		os.Exit(1)
	}

	sessionID := uuid.NewString()
	if len(os.Args) > 1 {
		sessionID = os.Args[1]
	}

	token, err := middleware.SignSession(sessionID, []byte(secret), time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s=%s\n", middleware.SessionCookieName, token)
}
