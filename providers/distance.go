package providers

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
)

// MapsDistanceClient computes route distances with the distance matrix and, when
// the matrix cannot place an endpoint, retries once with coordinates from the
// fallback geocoder.
type MapsDistanceClient struct {
	matrix   DistanceMatrix
	fallback FallbackGeocoder
	logger   *zap.Logger
}

// NewMapsDistanceClient creates a MapsDistanceClient.
func NewMapsDistanceClient(matrix DistanceMatrix, fallback FallbackGeocoder, logger *zap.Logger) *MapsDistanceClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MapsDistanceClient{matrix: matrix, fallback: fallback, logger: logger}
}

// Distance returns the route between origin and destination. The second matrix
// call is returned as is, even when still not resolvable.
func (c *MapsDistanceClient) Distance(ctx context.Context, origin, destination string) (DistanceResult, error) {
	resp, err := c.matrix.DistanceMatrix(ctx, origin, destination)
	if err != nil {
		return DistanceResult{}, err
	}
	if !resp.Anomalous() {
		return resp.Result(), nil
	}

	c.logger.Warn("Distance matrix response anomalous, using fallback geocoder",
		zap.String("origin", origin),
		zap.String("destination", destination),
		zap.String("element_status", resp.FirstElement().Status),
	)

	originCoords, destCoords, err := c.geocodePair(ctx, origin, destination)
	if err != nil {
		return DistanceResult{}, err
	}

	retry, err := c.matrix.DistanceMatrix(ctx, formatLatLng(originCoords), formatLatLng(destCoords))
	if err != nil {
		return DistanceResult{}, err
	}
	return retry.Result(), nil
}

// geocodePair resolves both endpoints concurrently with the fallback geocoder.
func (c *MapsDistanceClient) geocodePair(ctx context.Context, origin, destination string) (models.Coordinates, models.Coordinates, error) {
	var (
		originCoords, destCoords models.Coordinates
		originFound, destFound   bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		originCoords, originFound, err = c.fallback.FallbackGeocode(gctx, origin)
		return err
	})
	g.Go(func() error {
		var err error
		destCoords, destFound, err = c.fallback.FallbackGeocode(gctx, destination)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Coordinates{}, models.Coordinates{}, err
	}

	if !originFound || !destFound {
		return models.Coordinates{}, models.Coordinates{}, fmt.Errorf(
			"origin %q (found=%t), destination %q (found=%t): %w",
			origin, originFound, destination, destFound, ErrDistanceUnresolvable)
	}
	return originCoords, destCoords, nil
}

func formatLatLng(c models.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}
