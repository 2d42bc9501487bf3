package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/RaiAraujo30/Complete-Physical-Store/logger"
	"github.com/RaiAraujo30/Complete-Physical-Store/models"
	"github.com/RaiAraujo30/Complete-Physical-Store/providers"
	"github.com/RaiAraujo30/Complete-Physical-Store/repository"
)

// StoreService defines the store management and shipping resolution use cases.
type StoreService interface {
	Create(ctx context.Context, req *models.CreateStoreRequest) (*models.Store, *ServiceError)
	List(ctx context.Context, limit, offset int) (*models.PaginatedStores, *ServiceError)
	FindByID(ctx context.Context, id string) (*models.PaginatedStores, *ServiceError)
	FindByState(ctx context.Context, state string, limit, offset int) (*models.PaginatedStores, *ServiceError)
	Update(ctx context.Context, id string, req *models.UpdateStoreRequest) (*models.Store, *ServiceError)
	Delete(ctx context.Context, id string) (*models.Store, *ServiceError)
	GetStoresWithShipping(ctx context.Context, cep string, limit, offset int) (*models.StoresWithShipping, *ServiceError)
}

type storeServiceImpl struct {
	repo     repository.StoreRepository
	geocoder providers.Geocoder
	resolver *DistanceResolver
	quoter   *ShippingQuoter
	logger   *zap.Logger
}

// NewStoreService creates a new StoreService.
func NewStoreService(
	repo repository.StoreRepository,
	geocoder providers.Geocoder,
	resolver *DistanceResolver,
	quoter *ShippingQuoter,
	logger *zap.Logger,
) StoreService {
	return &storeServiceImpl{
		repo:     repo,
		geocoder: geocoder,
		resolver: resolver,
		quoter:   quoter,
		logger:   logger,
	}
}

// GetStoresWithShipping resolves, ranks and prices every store for a customer CEP.
func (s *storeServiceImpl) GetStoresWithShipping(ctx context.Context, cep string, limit, offset int) (*models.StoresWithShipping, *ServiceError) {
	if svcErr := ValidateCEP(cep); svcErr != nil {
		return nil, svcErr
	}
	log := logger.For(ctx, s.logger)
	log.Info("Getting stores with shipping", zap.String("cep", cep))

	stores, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Error("ListAll failed", zap.Error(err))
		return nil, ErrDatabase("list stores", err)
	}
	// Every store is loaded and measured on each request.
	log.Info("Loaded candidate stores", zap.String("cep", cep), zap.Int("store_count", len(stores)))

	candidates, err := s.resolver.Resolve(ctx, cep, stores)
	if errors.Is(err, ErrNoMatch) {
		return nil, ErrNoStoresFound(cep)
	}
	if err != nil {
		return nil, asServiceError(err)
	}

	total := len(candidates)
	log.Info("Resolved stores", zap.String("cep", cep), zap.Int("total", total))

	page := pageOf(candidates, limit, offset)
	result := &models.StoresWithShipping{
		Stores: make([]models.ShippingStoreResult, 0, len(page)),
		Pins:   make([]models.MapPin, 0, len(page)),
		Limit:  limit,
		Offset: offset,
		Total:  total,
	}

	for _, c := range page {
		quote, err := s.quoter.QuoteFor(ctx, c.Store, c.DistanceKm, cep)
		if err != nil {
			return nil, asServiceError(err)
		}
		result.Pins = append(result.Pins, newPin(c.Store))
		result.Stores = append(result.Stores, *quote)
	}
	return result, nil
}

func (s *storeServiceImpl) Create(ctx context.Context, req *models.CreateStoreRequest) (*models.Store, *ServiceError) {
	address := formatAddress(req.Address1, req.City, req.State, req.Country, req.PostalCode)
	coords, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		s.logger.Error("Geocoding failed on store create", zap.String("address", address), zap.Error(err))
		return nil, FromProviderError(err)
	}

	store := &models.Store{
		ID:                 uuid.NewString(),
		StoreName:          req.StoreName,
		TakeOutInStore:     req.TakeOutInStore,
		ShippingTimeInDays: req.ShippingTimeInDays,
		Latitude:           formatCoordinate(coords.Lat),
		Longitude:          formatCoordinate(coords.Lng),
		Address1:           req.Address1,
		Address2:           req.Address2,
		Address3:           req.Address3,
		District:           req.District,
		State:              strings.ToUpper(req.State),
		City:               req.City,
		Type:               req.Type,
		Country:            req.Country,
		PostalCode:         req.PostalCode,
		TelephoneNumber:    req.TelephoneNumber,
		EmailAddress:       req.EmailAddress,
	}
	if err := s.repo.Create(ctx, store); err != nil {
		s.logger.Error("Create store failed", zap.Error(err))
		return nil, ErrDatabase("create store", err)
	}

	s.logger.Info("Store created", zap.String("id", store.ID), zap.String("name", store.StoreName))
	return store, nil
}

func (s *storeServiceImpl) List(ctx context.Context, limit, offset int) (*models.PaginatedStores, *ServiceError) {
	stores, total, err := s.repo.FindPage(ctx, limit, offset)
	if err != nil {
		return nil, ErrDatabase("list stores", err)
	}
	return &models.PaginatedStores{Stores: stores, Limit: limit, Offset: offset, Total: total}, nil
}

// FindByID wraps the store in the listing envelope so clients handle one shape.
func (s *storeServiceImpl) FindByID(ctx context.Context, id string) (*models.PaginatedStores, *ServiceError) {
	store, svcErr := s.findStore(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	return &models.PaginatedStores{Stores: []models.Store{*store}, Limit: 1, Offset: 0, Total: 1}, nil
}

func (s *storeServiceImpl) FindByState(ctx context.Context, state string, limit, offset int) (*models.PaginatedStores, *ServiceError) {
	uf, svcErr := ValidateState(state)
	if svcErr != nil {
		return nil, svcErr
	}
	stores, total, err := s.repo.FindByState(ctx, uf, limit, offset)
	if err != nil {
		return nil, ErrDatabase("find stores by state", err)
	}
	return &models.PaginatedStores{Stores: stores, Limit: limit, Offset: offset, Total: total}, nil
}

// Update applies the provided fields. When any address field changes, the
// merged address is geocoded again and the coordinates replaced.
func (s *storeServiceImpl) Update(ctx context.Context, id string, req *models.UpdateStoreRequest) (*models.Store, *ServiceError) {
	existing, svcErr := s.findStore(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}

	updates := updateFields(req)

	if addressChanged(existing, req) {
		address := formatAddress(
			pick(req.Address1, existing.Address1),
			pick(req.City, existing.City),
			pick(req.State, existing.State),
			pick(req.Country, existing.Country),
			pick(req.PostalCode, existing.PostalCode),
		)
		coords, err := s.geocoder.Geocode(ctx, address)
		if err != nil {
			s.logger.Error("Geocoding failed on store update",
				zap.String("id", id), zap.String("address", address), zap.Error(err))
			return nil, FromProviderError(err)
		}
		updates["latitude"] = formatCoordinate(coords.Lat)
		updates["longitude"] = formatCoordinate(coords.Lng)
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrStoreNotFound(id)
	}
	if err != nil {
		return nil, ErrDatabase("update store", err)
	}
	return updated, nil
}

func (s *storeServiceImpl) Delete(ctx context.Context, id string) (*models.Store, *ServiceError) {
	store, err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrStoreNotFound(id)
	}
	if err != nil {
		return nil, ErrDatabase("delete store", err)
	}
	s.logger.Info("Store deleted", zap.String("id", id))
	return store, nil
}

func (s *storeServiceImpl) findStore(ctx context.Context, id string) (*models.Store, *ServiceError) {
	store, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrStoreNotFound(id)
	}
	if err != nil {
		return nil, ErrDatabase("find store", err)
	}
	return store, nil
}

// ---- helpers ----

func asServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return FromProviderError(err)
}

// pageOf returns candidates[offset : offset+limit] clamped to the slice bounds.
func pageOf(candidates []models.DistanceCandidate, limit, offset int) []models.DistanceCandidate {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	start := min(offset, len(candidates))
	end := min(start+limit, len(candidates))
	return candidates[start:end]
}

func newPin(store models.Store) models.MapPin {
	lat, _ := strconv.ParseFloat(store.Latitude, 64)
	lng, _ := strconv.ParseFloat(store.Longitude, 64)
	return models.MapPin{Position: models.Coordinates{Lat: lat, Lng: lng}, Title: store.StoreName}
}

func formatAddress(address1, city, state, country, postalCode string) string {
	return fmt.Sprintf("%s, %s, %s, %s, %s", address1, city, state, country, postalCode)
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pick(v *string, fallback string) string {
	if v != nil && *v != "" {
		return *v
	}
	return fallback
}

func addressChanged(existing *models.Store, req *models.UpdateStoreRequest) bool {
	changed := func(v *string, current string) bool {
		return v != nil && *v != "" && *v != current
	}
	return changed(req.Address1, existing.Address1) ||
		changed(req.City, existing.City) ||
		changed(req.State, existing.State) ||
		changed(req.PostalCode, existing.PostalCode) ||
		changed(req.Country, existing.Country)
}

func updateFields(req *models.UpdateStoreRequest) bson.M {
	set := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	setString("storeName", req.StoreName)
	setString("address1", req.Address1)
	setString("address2", req.Address2)
	setString("address3", req.Address3)
	setString("district", req.District)
	setString("city", req.City)
	setString("country", req.Country)
	setString("postalCode", req.PostalCode)
	setString("telephoneNumber", req.TelephoneNumber)
	setString("emailAddress", req.EmailAddress)
	if req.State != nil {
		set["state"] = strings.ToUpper(*req.State)
	}
	if req.TakeOutInStore != nil {
		set["takeOutInStore"] = *req.TakeOutInStore
	}
	if req.ShippingTimeInDays != nil {
		set["shippingTimeInDays"] = *req.ShippingTimeInDays
	}
	if req.Type != nil {
		set["type"] = *req.Type
	}
	return set
}
