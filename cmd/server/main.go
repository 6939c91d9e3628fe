package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/croc-pos/api/internal/config"
	"github.com/croc-pos/api/internal/router"
	"github.com/croc-pos/api/internal/storage"
)

func main() {
	cfg := config.Load()

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("Unable to open data directory: %v", err)
	}
	log.Printf("Using data directory %s", cfg.DataDir)

	r := router.New(cfg, store)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
