// Command main runs the database seeder for Proctrack.
package main

import (
	"flag"
	"log"

	"proctrack/internal/config"
	"proctrack/internal/database"
	"proctrack/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of user accounts to create")
	numOfficers := flag.Int("officers", 6, "Number of procurement officers to create")
	numRequests := flag.Int("requests", 60, "Number of requests to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d officers, %d requests, clean=%v",
		*numUsers, *numOfficers, *numRequests, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumOfficers: *numOfficers,
		NumRequests: *numRequests,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All done. Seeded accounts share the password: %s", seed.DevPassword)
}
