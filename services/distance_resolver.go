package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
	"github.com/RaiAraujo30/Complete-Physical-Store/providers"
)

// DefaultLocalDeliveryRadiusKm is the distance up to which fixed local delivery
// tiers apply and beyond which PDV stores are not offered.
const DefaultLocalDeliveryRadiusKm = 50.0

// ErrNoMatch is returned by Resolve when no store survives filtering.
var ErrNoMatch = errors.New("no store matched")

// DistanceResolver ranks stores by route distance to a customer postal code.
type DistanceResolver struct {
	client   providers.DistanceClient
	radiusKm float64
	logger   *zap.Logger
}

// NewDistanceResolver creates a DistanceResolver. A non-positive radius falls back
// to DefaultLocalDeliveryRadiusKm.
func NewDistanceResolver(client providers.DistanceClient, radiusKm float64, logger *zap.Logger) *DistanceResolver {
	if radiusKm <= 0 {
		radiusKm = DefaultLocalDeliveryRadiusKm
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DistanceResolver{client: client, radiusKm: radiusKm, logger: logger}
}

// Resolve computes the distance from cep to every store concurrently. The first
// failure aborts the whole batch with a DISTANCE_CALCULATION_ERROR and cancels
// the calls still in flight. Survivors are PDV stores within the radius and every
// other store type, sorted by ascending distance with ties kept in input order.
func (r *DistanceResolver) Resolve(ctx context.Context, cep string, stores []models.Store) ([]models.DistanceCandidate, error) {
	if len(stores) == 0 {
		return nil, ErrNoMatch
	}

	candidates := make([]models.DistanceCandidate, len(stores))
	failed := make(chan error, 1)

	g, gctx := errgroup.WithContext(ctx)
	for i, store := range stores {
		i, store := i, store
		g.Go(func() error {
			res, err := r.client.Distance(gctx, cep, store.Destination())
			if err == nil && !res.Resolvable() {
				err = fmt.Errorf("distance status %s", res.Status)
			}
			if err != nil {
				se := ErrDistanceCalculation(store.ID, cep, err)
				select {
				case failed <- se:
				default:
				}
				return se
			}
			candidates[i] = models.DistanceCandidate{Store: store, DistanceKm: res.Kilometers()}
			return nil
		})
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- g.Wait() }()

	select {
	case err := <-failed:
		r.logger.Error("Distance resolution aborted", zap.String("cep", cep), zap.Error(err))
		return nil, err
	case err := <-waitErr:
		if err != nil {
			return nil, err
		}
	}

	matched := make([]models.DistanceCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Store.Type == models.StoreTypePDV && c.DistanceKm > r.radiusKm {
			continue
		}
		matched = append(matched, c)
	}
	if len(matched) == 0 {
		return nil, ErrNoMatch
	}

	slices.SortStableFunc(matched, func(a, b models.DistanceCandidate) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})
	return matched, nil
}

// RadiusKm is the local delivery radius shared with the quoter.
func (r *DistanceResolver) RadiusKm() float64 { return r.radiusKm }
