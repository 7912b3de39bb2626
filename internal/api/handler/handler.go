package handler

import (
	"github.com/Roshanpeter07/GLIMCarPool/internal/replies"
	"github.com/Roshanpeter07/GLIMCarPool/internal/rides"
)

// Handler wires the webhook endpoint to the ride services.
type Handler struct {
	Rides    *rides.Service
	Resolver *rides.ResolverService
	Replies  *replies.Catalog
	// Lang selects the reply language; the catalog falls back to English.
	Lang string
}

func NewHandler(rideSvc *rides.Service, resolver *rides.ResolverService, catalog *replies.Catalog) *Handler {
	return &Handler{
		Rides:    rideSvc,
		Resolver: resolver,
		Replies:  catalog,
		Lang:     "en",
	}
}
