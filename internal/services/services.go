// package services defines interface Service for interacting with HTTP APIs
//
// NeoDB shelf API, yearshelf proxy
package services

import (
	"context"

	"github.com/hollowlog/yearshelf/internal/models"
)

// Service defines the interface for shelf data providers that can return the
// items completed in a given year, one category at a time.
type Service interface {
	// FetchCategory retrieves every record of one category completed in the
	// given year, newest first.
	FetchCategory(ctx context.Context, category models.Category, year int) ([]models.CategoryRecord, error)

	// Name returns the name of the service (e.g., "NeoDB", "Proxy")
	Name() string
}

// categoryPayload is the JSON envelope both the proxy and this module's
// clients speak: {"data": [ { "item": {...}, "created_time": ... } ]}.
type categoryPayload struct {
	Data []models.CategoryRecord `json:"data"`
}
