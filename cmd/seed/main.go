// Command main runs the database seeder for Kalem.
package main

import (
	"flag"
	"log"

	"kalem/internal/config"
	"kalem/internal/database"
	"kalem/internal/seed"
)

func main() {
	authors := flag.Int("authors", seed.DefaultOptions.Authors, "Number of authors to create")
	readers := flag.Int("readers", seed.DefaultOptions.Readers, "Number of readers to create")
	articles := flag.Int("articles", seed.DefaultOptions.Articles, "Number of articles to create")
	clean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d authors, %d readers, %d articles, clean=%v\n",
		*authors, *readers, *articles, *clean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateAll(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		Authors:  *authors,
		Readers:  *readers,
		Articles: *articles,
		Clean:    *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The database is populated with demo data.")
	log.Printf("Every seeded account has the password: %s", seed.SeedPassword)
}
