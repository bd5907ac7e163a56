package main

import (
	"context"
	"fmt"

	"github.com/deparrow/console/internal/client"
	"github.com/deparrow/console/internal/config"
	"github.com/deparrow/console/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("deparrow-console")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	app, err := client.NewApp(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init console app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("console run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
