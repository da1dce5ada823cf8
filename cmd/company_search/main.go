package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/corpindex/company-search/api"
	"github.com/corpindex/company-search/config"
	"github.com/corpindex/company-search/internal/engine"
)

func main() {
	var (
		help       = flag.Bool("help", false, "Show help message")
		configFile = flag.String("config", "", "Path to a YAML config file")
		port       = flag.Int("port", 0, "Port to run the server on")
		dataDir    = flag.String("data-dir", "", "Directory for persisted index data")
		rulesFile  = flag.String("rules-file", "", "YAML file overriding the built-in synonym tables")
		idListPath = flag.String("id-list", "", "File receiving one company ID per indexed document")
	)
	flag.Parse()

	if *help {
		fmt.Printf("Company Search - a typo-tolerant company name and location search service\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		return
	}

	settings := config.DefaultSettings()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		settings = loaded
	}
	// Flags override the config file.
	if *port != 0 {
		settings.Port = *port
	}
	if *dataDir != "" {
		settings.DataDir = *dataDir
	}
	if *rulesFile != "" {
		settings.RulesFile = *rulesFile
	}
	if *idListPath != "" {
		settings.IDListPath = *idListPath
	}
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Using data directory: %s", settings.DataDir)
	eng, err := engine.New(settings)
	if err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}
	defer eng.Close()

	router := gin.Default()
	api.SetupRoutes(router, eng)

	log.Printf("Starting server on port %d...", settings.Port)
	if err := router.Run(":" + strconv.Itoa(settings.Port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
