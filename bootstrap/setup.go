// Package bootstrap wires the application components together from
// configuration.
package bootstrap

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/flightdesk/flightdesk/airports"
	"github.com/flightdesk/flightdesk/amadeus"
	"github.com/flightdesk/flightdesk/cache"
	"github.com/flightdesk/flightdesk/config"
	"github.com/flightdesk/flightdesk/log"
	"github.com/flightdesk/flightdesk/mockdata"
	"github.com/flightdesk/flightdesk/search"
	"github.com/flightdesk/flightdesk/tools"
)

// App holds the initialized components of the application.
type App struct {
	Directory *airports.Directory
	Service   *search.Service
	Registry  *tools.Registry
	Store     *cache.Store
}

// Setup initializes the application components based on the
// configuration. A cache that fails to open degrades to no caching
// rather than aborting startup.
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	directory := airports.NewDirectory()
	generator := mockdata.New(directory)

	var store *cache.Store
	if cfg.Cache.Enabled {
		ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
		opened, err := cache.Open(cfg.Cache.Path, ttl)
		if err != nil {
			log.Warnf(ctx, "Cache disabled, failed to open %s: %v", cfg.Cache.Path, err)
		} else {
			store = opened
		}
	}

	client := amadeus.NewClient(
		cfg.Amadeus.ClientID,
		cfg.Amadeus.ClientSecret,
		cfg.Amadeus.BaseURL,
		cfg.Search.Currency,
		cfg.Search.MaxResults,
	)

	svcCfg := search.Config{
		Directory:      directory,
		Live:           client,
		Mock:           generator,
		LiveEnabled:    cfg.LiveEnabled(),
		FallbackToMock: cfg.Search.FallbackToMock,
		ScanRate:       rate.Every(100 * time.Millisecond),
	}
	if store != nil {
		svcCfg.Store = store
	}
	service := search.NewService(svcCfg)

	registry := tools.NewRegistry()
	registry.Register(&tools.SearchFlightsTool{Service: service})
	registry.Register(&tools.BestPriceTool{Service: service})
	registry.Register(&tools.AirportInfoTool{Directory: directory})
	registry.Register(&tools.ComparePricesTool{Service: service})

	log.Infof(ctx, "Flight search service initialized - live API: %v, mock fallback: %v, cache: %v",
		cfg.LiveEnabled(), cfg.Search.FallbackToMock, store != nil)

	return &App{
		Directory: directory,
		Service:   service,
		Registry:  registry,
		Store:     store,
	}, nil
}
