// Command diagnose checks the local setup: configuration presence,
// upstream credentials, and cache writability. It prints a report and
// exits non-zero when a fatal problem is found.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/flightdesk/flightdesk/amadeus"
	"github.com/flightdesk/flightdesk/cache"
	"github.com/flightdesk/flightdesk/config"
	"github.com/flightdesk/flightdesk/flight"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: cannot load config: %v\n", err)
		os.Exit(1)
	}

	failed := false

	fmt.Println("Flight search service diagnostics")
	fmt.Println("---------------------------------")

	fmt.Printf("Live API enabled:    %v\n", cfg.Search.UseRealAPI)
	fmt.Printf("Mock fallback:       %v\n", cfg.Search.FallbackToMock)
	fmt.Printf("Upstream base URL:   %s\n", cfg.Amadeus.BaseURL)
	fmt.Printf("Client ID set:       %v\n", cfg.Amadeus.ClientID != "")
	fmt.Printf("Client secret set:   %v\n", cfg.Amadeus.ClientSecret != "")

	if cfg.Search.UseRealAPI && (cfg.Amadeus.ClientID == "" || cfg.Amadeus.ClientSecret == "") {
		fmt.Println("FAIL: USE_REAL_API is on but credentials are missing")
		failed = true
	}

	if cfg.LiveEnabled() {
		fmt.Print("Token exchange:      ")
		ctx, cancel := context.WithTimeout(context.Background(), amadeus.DefaultAuthTimeout)
		tokens := amadeus.NewTokenManager(cfg.Amadeus.ClientID, cfg.Amadeus.ClientSecret, cfg.Amadeus.BaseURL)
		if _, err := tokens.Token(ctx); err != nil {
			fmt.Printf("FAIL (%v)\n", err)
			failed = true
		} else {
			fmt.Println("ok")
		}
		cancel()
	}

	if cfg.Cache.Enabled {
		fmt.Print("Cache writability:   ")
		if err := checkCache(cfg); err != nil {
			// Cache problems degrade the service, they do not break it.
			fmt.Printf("WARN (%v)\n", err)
		} else {
			fmt.Println("ok")
		}
	}

	if failed {
		fmt.Println("\nResult: FAIL")
		os.Exit(1)
	}

	if !cfg.LiveEnabled() && !cfg.Search.FallbackToMock {
		fmt.Println("\nResult: WARN - every search will return an empty tagged result")
		return
	}

	fmt.Println("\nResult: ok")
}

func checkCache(cfg *config.Config) error {
	store, err := cache.Open(cfg.Cache.Path, time.Minute)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	probe := &flight.SearchResult{
		Params: flight.SearchParams{
			Origin:        "LAX",
			Destination:   "JFK",
			DepartureDate: time.Now().Format(flight.DateLayout),
			Passengers:    1,
		},
		Provenance: flight.ProvenanceMock,
		Timestamp:  time.Now(),
	}
	return store.PutSearch(ctx, probe)
}
