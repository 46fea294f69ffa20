package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/accesskeeper/internal/server"
	"github.com/dmitrijs2005/accesskeeper/internal/server/config"
)

// promptPassword reads the bootstrap admin password from the terminal
// without echoing it.
func promptPassword(login string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for new admin user %q: ", login)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	if cfg.AdminLogin != "" && cfg.AdminPassword == "" {
		password, err := promptPassword(cfg.AdminLogin)
		if err != nil {
			log.Printf("%v", err)
			return
		}
		cfg.AdminPassword = password
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
