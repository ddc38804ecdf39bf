// Command seed writes the fixture posts, plus optional generated ones, to the
// configured database.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"fachnmchi/internal/config"
	"fachnmchi/internal/database"
	"fachnmchi/internal/repository"
	"fachnmchi/internal/seed"
)

func main() {
	extra := flag.Int("extra", 0, "Number of generated posts to add")
	clean := flag.Bool("clean", false, "Replace every stored post")
	randSeed := flag.Int64("seed", time.Now().UnixNano(), "Random seed for generated posts")
	flag.Parse()

	log.Println("🌱 Post Seeder")
	log.Printf("Target: %d generated posts, clean=%v\n", *extra, *clean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if errors.Is(err, database.ErrNoDatabase) {
		log.Fatalf("DB_DRIVER is %q; set it to postgres or sqlite to seed", cfg.DBDriver)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	s := seed.NewSeeder(repository.NewPostRepository(db), *randSeed)
	n, err := s.Run(context.Background(), seed.Options{Extra: *extra, Clean: *clean})
	if err != nil {
		log.Fatalf("❌ Seeding failed after %d posts: %v", n, err)
	}

	log.Printf("✨ Wrote %d posts.", n)
}
