// Command migrate runs schema operations for the backend. The server
// migrates automatically outside production; this tool is how production
// schemas are applied and inspected.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/clairelorenzo/app-backend-6104/internal/config"
	"github.com/clairelorenzo/app-backend-6104/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|status>")
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

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0)))
	switch cmd {
	case "up":
		if err := database.ApplySchema(db); err != nil {
			return fmt.Errorf("schema apply failed: %w", err)
		}
		log.Println("schema applied")
	case "status":
		status, err := database.GetSchemaStatus(db)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}
		for _, tbl := range status.Tables {
			state := "ok"
			if !tbl.Exists {
				state = "missing"
			}
			log.Printf("%-20s %s", tbl.Name, state)
		}
		if status.Missing > 0 {
			return fmt.Errorf("%d table(s) missing, run 'migrate up'", status.Missing)
		}
		log.Println("schema up to date")
	default:
		return usage()
	}

	return nil
}
