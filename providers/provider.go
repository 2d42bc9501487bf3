package providers

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
)

// Provider names used in ProviderError.
const (
	ProviderGoogle   = "google"
	ProviderOpenCage = "opencage"
	ProviderCorreios = "correios"
)

// Element status values reported by the distance matrix.
const (
	StatusOK              = "OK"
	StatusMissingDistance = "MISSING_DISTANCE"
)

var (
	// ErrAddressNotFound is returned by primary geocoding when the address has no match.
	ErrAddressNotFound = errors.New("address not found")

	// ErrDistanceUnresolvable is returned when the distance matrix response was
	// anomalous and the fallback geocoder could not place one of the endpoints.
	ErrDistanceUnresolvable = errors.New("distance unresolvable")
)

// ProviderError is a transport or provider failure. It keeps the request
// parameters so the failure can be diagnosed without querying the provider again.
type ProviderError struct {
	Provider string
	Op       string
	Params   map[string]string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Geocoder resolves a free-text address with the primary provider.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Coordinates, error)
}

// FallbackGeocoder resolves a free-text address with the secondary provider.
// found is false, with a nil error, when the provider has no result.
type FallbackGeocoder interface {
	FallbackGeocode(ctx context.Context, address string) (coords models.Coordinates, found bool, err error)
}

// DistanceMatrix issues a single distance matrix request.
type DistanceMatrix interface {
	DistanceMatrix(ctx context.Context, origin, destination string) (*DistanceMatrixResponse, error)
}

// DistanceClient computes the route distance between two free-text locations.
type DistanceClient interface {
	Distance(ctx context.Context, origin, destination string) (DistanceResult, error)
}

// FreightProvider quotes parcel freight between two postal codes.
type FreightProvider interface {
	QuoteFreight(ctx context.Context, req models.FreightRequest) ([]models.FreightQuote, error)
}

// DistanceResult is the outcome of a distance computation. Only a resolvable
// result carries a meaningful distance and duration.
type DistanceResult struct {
	Status          string
	DistanceMeters  int
	DurationSeconds int
}

// Resolvable reports whether the result carries a route distance.
func (r DistanceResult) Resolvable() bool {
	return r.Status == StatusOK
}

// Kilometers converts the distance to kilometres rounded to one decimal place,
// half away from zero.
func (r DistanceResult) Kilometers() float64 {
	return MetersToKilometers(r.DistanceMeters)
}

// MetersToKilometers divides by 1000 and rounds to one decimal place. Rounding is
// done on meters/100 so ties such as 1250 m are decided on the exact decimal.
func MetersToKilometers(meters int) float64 {
	return math.Round(float64(meters)/100) / 10
}
