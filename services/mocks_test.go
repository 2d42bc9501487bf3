package services_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
	"github.com/RaiAraujo30/Complete-Physical-Store/providers"
)

// ---- mock store repository ----

type mockStoreRepo struct {
	mock.Mock
}

func (m *mockStoreRepo) ListAll(ctx context.Context) ([]models.Store, error) {
	args := m.Called(ctx)
	stores, _ := args.Get(0).([]models.Store)
	return stores, args.Error(1)
}

func (m *mockStoreRepo) FindPage(ctx context.Context, limit, offset int) ([]models.Store, int64, error) {
	args := m.Called(ctx, limit, offset)
	stores, _ := args.Get(0).([]models.Store)
	return stores, args.Get(1).(int64), args.Error(2)
}

func (m *mockStoreRepo) FindByID(ctx context.Context, id string) (*models.Store, error) {
	args := m.Called(ctx, id)
	store, _ := args.Get(0).(*models.Store)
	return store, args.Error(1)
}

func (m *mockStoreRepo) FindByState(ctx context.Context, state string, limit, offset int) ([]models.Store, int64, error) {
	args := m.Called(ctx, state, limit, offset)
	stores, _ := args.Get(0).([]models.Store)
	return stores, args.Get(1).(int64), args.Error(2)
}

func (m *mockStoreRepo) Create(ctx context.Context, store *models.Store) error {
	return m.Called(ctx, store).Error(0)
}

func (m *mockStoreRepo) Update(ctx context.Context, id string, updates bson.M) (*models.Store, error) {
	args := m.Called(ctx, id, updates)
	store, _ := args.Get(0).(*models.Store)
	return store, args.Error(1)
}

func (m *mockStoreRepo) Delete(ctx context.Context, id string) (*models.Store, error) {
	args := m.Called(ctx, id)
	store, _ := args.Get(0).(*models.Store)
	return store, args.Error(1)
}

// ---- fake delivery criteria repository ----

type fakeCriteriaRepo struct {
	criteria  []models.DeliveryCriterion
	findErr   error
	createErr error
	deleteErr error
	finds     int
}

func (f *fakeCriteriaRepo) FindAllSorted(_ context.Context) ([]models.DeliveryCriterion, error) {
	f.finds++
	return f.criteria, f.findErr
}

func (f *fakeCriteriaRepo) Create(_ context.Context, c *models.DeliveryCriterion) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = uuid.New()
	return nil
}

func (f *fakeCriteriaRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return f.deleteErr
}

// ---- fake distance client, keyed by destination ----

type fakeDistanceClient struct {
	mu      sync.Mutex
	results map[string]providers.DistanceResult
	errs    map[string]error
	block   map[string]chan struct{}
	calls   []string
}

func (f *fakeDistanceClient) Distance(_ context.Context, _, destination string) (providers.DistanceResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, destination)
	wait := f.block[destination]
	f.mu.Unlock()

	if wait != nil {
		<-wait
	}
	if err := f.errs[destination]; err != nil {
		return providers.DistanceResult{}, err
	}
	return f.results[destination], nil
}

func meters(m int) providers.DistanceResult {
	return providers.DistanceResult{Status: providers.StatusOK, DistanceMeters: m}
}

// ---- fake freight provider ----

type fakeFreight struct {
	quotes []models.FreightQuote
	err    error
	got    []models.FreightRequest
}

func (f *fakeFreight) QuoteFreight(_ context.Context, req models.FreightRequest) ([]models.FreightQuote, error) {
	f.got = append(f.got, req)
	return f.quotes, f.err
}

// ---- fake geocoder ----

type fakeGeocoder struct {
	coords    models.Coordinates
	err       error
	addresses []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (models.Coordinates, error) {
	f.addresses = append(f.addresses, address)
	return f.coords, f.err
}

// ---- fixtures ----

func testStore(id, lat string, storeType models.StoreType) models.Store {
	return models.Store{
		ID:                 id,
		StoreName:          "Store " + id,
		City:               "São Paulo",
		PostalCode:         "01310-100",
		Type:               storeType,
		Latitude:           lat,
		Longitude:          "-46.6",
		ShippingTimeInDays: 1,
	}
}

func standardCriteria() []models.DeliveryCriterion {
	return []models.DeliveryCriterion{
		{MaxDistance: 10, DeliveryMethod: "Motoboy", DeliveryTime: "1 business day", Price: 15},
		{MaxDistance: 30, DeliveryMethod: "Van", DeliveryTime: "2 business days", Price: 25.5},
		{MaxDistance: 50, DeliveryMethod: "Truck", DeliveryTime: "3 business days", Price: 40},
	}
}
