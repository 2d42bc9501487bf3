package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
	"github.com/RaiAraujo30/Complete-Physical-Store/providers"
	"github.com/RaiAraujo30/Complete-Physical-Store/repository"
)

// Parcel dimensions in centimetres sent with every freight quotation.
const (
	ParcelLength = "30"
	ParcelWidth  = "15"
	ParcelHeight = "10"
)

// ShippingQuoter prices delivery from one store to a customer.
type ShippingQuoter struct {
	criteria repository.DeliveryCriteriaRepository
	freight  providers.FreightProvider
	radiusKm float64
	logger   *zap.Logger
}

// NewShippingQuoter creates a ShippingQuoter. radiusKm must match the resolver's.
func NewShippingQuoter(criteria repository.DeliveryCriteriaRepository, freight providers.FreightProvider, radiusKm float64, logger *zap.Logger) *ShippingQuoter {
	if radiusKm <= 0 {
		radiusKm = DefaultLocalDeliveryRadiusKm
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShippingQuoter{criteria: criteria, freight: freight, radiusKm: radiusKm, logger: logger}
}

// QuoteFor returns the fixed local tier when the store is within the radius and
// a live freight quote otherwise.
func (q *ShippingQuoter) QuoteFor(ctx context.Context, store models.Store, distanceKm float64, customerCEP string) (*models.ShippingStoreResult, error) {
	var (
		options []models.ShippingOption
		err     error
	)
	if distanceKm <= q.radiusKm {
		options, err = q.fixedOptions(ctx, distanceKm)
	} else {
		options, err = q.freightOptions(ctx, store, customerCEP)
	}
	if err != nil {
		return nil, err
	}

	return &models.ShippingStoreResult{
		Name:       store.StoreName,
		City:       store.City,
		PostalCode: store.PostalCode,
		Type:       store.Type,
		Distance:   DistanceLabel(distanceKm),
		Value:      options,
	}, nil
}

func (q *ShippingQuoter) fixedOptions(ctx context.Context, distanceKm float64) ([]models.ShippingOption, error) {
	criteria, err := q.criteria.FindAllSorted(ctx)
	if err != nil {
		return nil, ErrDatabase("find delivery criteria", err)
	}

	for _, c := range criteria {
		if distanceKm <= c.MaxDistance {
			return []models.ShippingOption{{
				LeadTime:    c.DeliveryTime,
				Price:       fmt.Sprintf("R$ %.2f", c.Price),
				Description: c.DeliveryMethod,
			}}, nil
		}
	}
	return nil, ErrDeliveryCriteriaNotFound(distanceKm)
}

func (q *ShippingQuoter) freightOptions(ctx context.Context, store models.Store, customerCEP string) ([]models.ShippingOption, error) {
	req := models.FreightRequest{
		OriginPostalCode:      CleanCEP(store.PostalCode),
		DestinationPostalCode: CleanCEP(customerCEP),
		Length:                ParcelLength,
		Width:                 ParcelWidth,
		Height:                ParcelHeight,
	}

	quotes, err := q.freight.QuoteFreight(ctx, req)
	if err != nil {
		q.logger.Error("Freight quotation failed",
			zap.String("store", store.StoreName),
			zap.String("cep_origem", req.OriginPostalCode),
			zap.String("cep_destino", req.DestinationPostalCode),
			zap.Error(err),
		)
		return nil, ErrFreightCalculation(store.StoreName, req.DestinationPostalCode, req.OriginPostalCode, err)
	}

	options := make([]models.ShippingOption, 0, len(quotes))
	for _, quote := range quotes {
		days, err := strconv.Atoi(strings.TrimSpace(quote.LeadTimeDays))
		if err != nil {
			return nil, ErrFreightQuoteMalformed(store.StoreName, quote.LeadTimeDays, err)
		}
		options = append(options, models.ShippingOption{
			LeadTime:    fmt.Sprintf("%d business days", store.ShippingTimeInDays+days),
			Price:       quote.Price,
			Description: quote.ServiceTitle,
		})
	}
	return options, nil
}

// DistanceLabel renders a distance as "<km> km" without trailing zeros.
func DistanceLabel(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64) + " km"
}
