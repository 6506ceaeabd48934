// ABOUTME: Admin CLI for lorekeep user and token management
// ABOUTME: Talks directly to the configured database, no server required

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"

	"github.com/lorekeep/lorekeep/internal/auth"
	"github.com/lorekeep/lorekeep/internal/config"
	"github.com/lorekeep/lorekeep/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "user":
		err = cmdUser(args)
	case "token":
		err = cmdToken(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: lorekeep-admin <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  user create --email EMAIL --password PW [--name NAME] [--superuser]")
	fmt.Println("  user list")
	fmt.Println("  token issue EMAIL [--ttl DURATION]")
	fmt.Println()
	fmt.Println("Config is read from LOREKEEP_CONFIG or ~/.config/lorekeep/lorekeep.yaml.")
}

// getConfigPath mirrors lorekeepd's config resolution.
func getConfigPath() string {
	if envPath := os.Getenv("LOREKEEP_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "lorekeep.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "lorekeep", "lorekeep.yaml")
}

// openDB loads config and opens the database with the schema ensured.
func openDB(ctx context.Context) (*config.Config, *bun.DB, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	if err := store.InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initializing schema: %w", err)
	}

	return cfg, db, nil
}

func cmdUser(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: lorekeep-admin user <create|list>")
	}

	switch args[0] {
	case "create":
		return cmdUserCreate(args[1:])
	case "list":
		return cmdUserList()
	default:
		return fmt.Errorf("unknown user subcommand: %s", args[0])
	}
}

func cmdUserCreate(args []string) error {
	fs := flag.NewFlagSet("user create", flag.ExitOnError)
	email := fs.String("email", "", "email address (required)")
	password := fs.String("password", "", "password (required)")
	name := fs.String("name", "", "display name")
	superuser := fs.Bool("superuser", false, "grant superuser privileges")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" || *password == "" {
		return fmt.Errorf("--email and --password are required")
	}

	ctx := context.Background()
	_, db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	users := store.NewUserStore()

	existing, err := users.GetByEmail(ctx, db, *email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("user %s already exists", *email)
	}

	payload := store.UserCreate{Email: *email, Password: *password}
	if *name != "" {
		payload.FullName = name
	}

	user, err := users.Create(ctx, db, payload)
	if err != nil {
		return err
	}

	// Creation always yields a regular user; privilege is an explicit
	// second step.
	if *superuser {
		super := true
		user, err = users.Update(ctx, db, user, store.UserUpdate{IsSuperuser: &super})
		if err != nil {
			return err
		}
	}

	green := color.New(color.FgGreen)
	green.Print("✓ ")
	fmt.Printf("Created user %s (id %d)\n", user.Email, user.ID)
	if user.IsSuperuser {
		color.Yellow("  superuser")
	}
	return nil
}

func cmdUserList() error {
	ctx := context.Background()
	_, db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := store.NewUserStore().List(ctx, db, 0, 100)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tACTIVE\tSUPERUSER\tCREATED")
	for _, u := range users {
		name := ""
		if u.FullName != nil {
			name = *u.FullName
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%t\t%s\n",
			u.ID, u.Email, name, u.IsActive, u.IsSuperuser,
			u.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func cmdToken(args []string) error {
	if len(args) < 1 || args[0] != "issue" {
		return fmt.Errorf("usage: lorekeep-admin token issue EMAIL [--ttl DURATION]")
	}
	args = args[1:]

	if len(args) < 1 {
		return fmt.Errorf("usage: lorekeep-admin token issue EMAIL [--ttl DURATION]")
	}
	email := args[0]

	fs := flag.NewFlagSet("token issue", flag.ExitOnError)
	ttl := fs.Duration("ttl", 0, "token lifetime (default: configured token_ttl, else 30m)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	ctx := context.Background()
	cfg, db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := store.NewUserStore().GetByEmail(ctx, db, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no user with email %s", email)
	}
	if !user.IsActive {
		return fmt.Errorf("user %s is inactive", email)
	}

	issuer := auth.NewTokenIssuer(cfg.Auth.Secret)

	lifetime := *ttl
	if lifetime == 0 {
		lifetime = cfg.Auth.TokenTTL
	}
	if lifetime == 0 {
		lifetime = auth.DefaultTokenTTL
	}

	token, err := issuer.IssueFor(strconv.FormatInt(user.ID, 10), lifetime)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	cyan.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", time.Now().Add(lifetime).UTC().Format(time.RFC3339))
	return nil
}
