package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/sharebox/internal/server"
	"github.com/dmitrijs2005/sharebox/internal/server/config"
)

var errNoAdminPassword = errors.New("admin password is not configured (set SHAREBOX_ADMIN_PASSWORD or admin_password in the config file)")

// Seams for tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// ensureAdminPassword prompts for the admin password when none is
// configured and stdin is a terminal.
func ensureAdminPassword(cfg *config.Config, fd int, prompt io.Writer) error {
	if cfg.AdminPassword != "" {
		return nil
	}
	if !isTerminal(fd) {
		return errNoAdminPassword
	}

	fmt.Fprintf(prompt, "Admin password for %s: ", cfg.AdminEmail)
	b, err := readPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return fmt.Errorf("read admin password: %w", err)
	}

	pw := strings.TrimSpace(string(b))
	if pw == "" {
		return errNoAdminPassword
	}
	cfg.AdminPassword = pw
	return nil
}

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := ensureAdminPassword(cfg, int(os.Stdin.Fd()), os.Stderr); err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
