// Command seed populates the database with development data.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	posts := flag.Int("posts", 50, "number of posts to create")
	clean := flag.Bool("clean", false, "delete existing rows first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *users,
		NumPosts:    *posts,
		ShouldClean: *clean,
		VocabFile:   cfg.SeedVocabFile,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
