package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Contract for resolving free-text locations to coordinates.
type Geocoder interface {
	// Return up to limit places matching text, best match first.
	Search(ctx context.Context, text string, limit int) ([]domain.Place, error)
}
