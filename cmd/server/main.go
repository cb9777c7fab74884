package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/erazemk/cenik/internal/api"
	"github.com/erazemk/cenik/internal/config"
	"github.com/erazemk/cenik/internal/db"
	"github.com/erazemk/cenik/internal/store"
	"github.com/erazemk/cenik/internal/web"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: cenik <init|serve>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		cmdInit(os.Args[2:])
	case "serve":
		cmdServe()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: cenik <init|serve>\n", os.Args[1])
		os.Exit(1)
	}
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath := fs.String("db", "cenik.sqlite3", "path to SQLite database file")
	seed := fs.Bool("seed", false, "insert a few sample items")
	fs.Parse(args)

	if _, err := os.Stat(*dbPath); err == nil {
		fmt.Fprintf(os.Stderr, "Error: database file %s already exists\n", *dbPath)
		os.Exit(1)
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		os.Remove(*dbPath)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database created: %s\n", *dbPath)
	fmt.Println("Schema initialized.")

	if *seed {
		if err := seedItems(database); err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding items: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Sample items inserted.")
	}
}

func cmdServe() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing log level")
	}
	zerolog.SetGlobalLevel(level)

	// Open database, creating and migrating it on first run.
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database")
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("migrating database")
	}

	// Set up routers.
	apiRouter := api.NewRouter(database)
	webRouter, err := web.NewRouter(database)
	if err != nil {
		log.Fatal().Err(err).Msg("setting up web router")
	}

	// Combine: UI pages and static assets take priority, the JSON API
	// handles the rest.
	mux := http.NewServeMux()
	mux.Handle("/items/ui", webRouter)
	mux.Handle("/items/ui/", webRouter)
	mux.Handle("/static/", webRouter)
	mux.Handle("/", apiRouter)

	handler := api.LoggingMiddleware(mux)

	log.Info().Str("addr", cfg.Server.Addr).Str("db", cfg.Database.Path).Msg("server listening")
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// seedItems inserts a small starter catalog so the UI has something to show.
func seedItems(database *sql.DB) error {
	ctx := context.Background()
	samples := []struct {
		name, description string
		price             float64
	}{
		{"Pen", "Blue ballpoint", 1.20},
		{"Notebook", "A5, ruled, 96 pages", 3.50},
		{"Backpack", "20 l, water resistant", 39.90},
	}
	for _, s := range samples {
		if _, err := store.CreateItem(ctx, database, s.name, s.description, s.price); err != nil {
			return err
		}
	}
	return nil
}
