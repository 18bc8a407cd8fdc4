package main

import (
	"log"

	"github.com/delilar/avito-intenship-2025/internal/app"
	"github.com/delilar/avito-intenship-2025/internal/app/config"
)

func main() {
	cfg := config.MustLoad()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application terminated: %v", err)
	}
}
