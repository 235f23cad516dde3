package transit

import (
	"context"

	"github.com/ytget/departure-board/internal/model"
)

// Fetcher defines the interface for the station board fetcher.
type Fetcher interface {
	// Fetch performs one request and returns departures in API order. With
	// filterToTerminals only departures heading to a configured terminal are kept.
	Fetch(ctx context.Context, filterToTerminals bool) ([]model.Departure, error)
}
