// Command migrate applies or inspects the post schema. Production servers
// never migrate on startup, so deploys run `migrate auto` first.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"fachnmchi/internal/config"
	"fachnmchi/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return errors.New("usage: go run ./cmd/migrate <auto|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Connect migrates by itself outside production; status should report the
	// schema as it is, so force the production path.
	cfg.Env = "production"
	db, err := database.Connect(cfg)
	if errors.Is(err, database.ErrNoDatabase) {
		return fmt.Errorf("DB_DRIVER is %q; nothing to migrate", cfg.DBDriver)
	}
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "auto":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Println("automigrations applied")
	case "status":
		status, err := database.SchemaStatus(db)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}
		for _, st := range status {
			log.Printf("table=%s exists=%t missing=%d", st.Table, st.Exists, len(st.MissingColumns))
			for _, col := range st.MissingColumns {
				log.Printf("pending column: %s.%s", st.Table, col)
			}
		}
		if database.Pending(status) {
			log.Println("schema is behind; run `migrate auto`")
		}
	default:
		return usage()
	}
	return nil
}
