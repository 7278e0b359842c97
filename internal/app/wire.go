package app

import (
	"net/http"

	"geoseal/internal/client"
	"geoseal/internal/domain"
	identitysvc "geoseal/internal/services/identity"
	"geoseal/internal/store"
)

// Wire bundles the stores, services, and clients the CLI commands use.
type Wire struct {
	Identity domain.IdentityService
	Drop     domain.DropClient
	HTTP     *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	identityStore := store.NewIdentityFileStore(cfg.Home)

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	drop := client.New(cfg.ServerURL)
	drop.HTTP = httpClient

	return &Wire{
		Identity: identitysvc.New(identityStore),
		Drop:     drop,
		HTTP:     httpClient,
	}, nil
}
