package main

import (
	"context"
	"flag"
	"os"

	"pickem-app-go/config"
	"pickem-app-go/database"
	"pickem-app-go/logging"
	"pickem-app-go/services"
)

// Imports a pre-season flat JSON document into the seasons schema. Usage:
//
//	import-legacy -file picks_data.json -season "2024"
func main() {
	file := flag.String("file", "", "path to the legacy JSON document")
	season := flag.String("season", "", "name of the season to create")
	flag.Parse()

	if *file == "" || *season == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewMongoConnection(cfg.Database)
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	importer := services.NewLegacyImportService(
		database.NewMongoSeasonRepository(db),
		database.NewMongoUserRepository(db),
		services.NewResultService(),
		services.NewViewCache(),
	)

	if err := importer.ImportFile(context.Background(), *file, *season); err != nil {
		logging.Fatalf("Import failed: %v", err)
	}
	logging.Infof("Legacy import complete: %s -> season %s", *file, *season)
}
