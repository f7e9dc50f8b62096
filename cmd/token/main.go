// Command token mints a bearer token for the admin endpoints using the
// server's JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"starforge/internal/auth"
	"starforge/internal/shared/config"
	"starforge/internal/shared/logger"
)

func main() {
	subject := flag.String("subject", "admin", "token subject")
	role := flag.String("role", auth.RoleAdmin, "role claim")
	flag.Parse()

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}
	// stdout carries only the token
	slog.SetDefault(logger.New(config.GlobalConfig.Logging, os.Stderr))

	tokens := auth.NewTokenService(config.GlobalConfig.Auth, slog.Default())
	if tokens == nil {
		os.Exit(1)
	}

	token, err := tokens.Generate(*subject, *role)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
