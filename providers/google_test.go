package providers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaiAraujo30/Complete-Physical-Store/providers"
)

func newGoogleTestServer(t *testing.T, handler http.HandlerFunc) *providers.GoogleMapsClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return providers.NewGoogleMapsClient(providers.GoogleMapsConfig{APIKey: "test-key", BaseURL: srv.URL})
}

func TestGeocode_Success(t *testing.T) {
	client := newGoogleTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/json", r.URL.Path)
		assert.Equal(t, "01010-000", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":-23.5489,"lng":-46.6388}}}]}`))
	})

	coords, err := client.Geocode(context.Background(), "01010-000")
	require.NoError(t, err)
	assert.Equal(t, -23.5489, coords.Lat)
	assert.Equal(t, -46.6388, coords.Lng)
}

func TestGeocode_ZeroResults(t *testing.T) {
	client := newGoogleTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	_, err := client.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, providers.ErrAddressNotFound)
}

func TestGeocode_DeniedStatusIsProviderError(t *testing.T) {
	client := newGoogleTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key","results":[]}`))
	})

	_, err := client.Geocode(context.Background(), "Rua A")
	var pe *providers.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, providers.ProviderGoogle, pe.Provider)
	assert.Equal(t, "geocode", pe.Op)
	assert.Equal(t, "Rua A", pe.Params["address"])
	assert.NotErrorIs(t, err, providers.ErrAddressNotFound)
}

func TestGeocode_HTTPError(t *testing.T) {
	client := newGoogleTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	_, err := client.Geocode(context.Background(), "Rua A")
	var pe *providers.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Error(), "unexpected status 500")
}

func TestDistanceMatrix_Success(t *testing.T) {
	client := newGoogleTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/distancematrix/json", r.URL.Path)
		assert.Equal(t, "01010-000", r.URL.Query().Get("origins"))
		assert.Equal(t, "-23.5,-46.6", r.URL.Query().Get("destinations"))
		_, _ = w.Write([]byte(`{
			"status":"OK",
			"origin_addresses":["São Paulo"],
			"destination_addresses":["Av. Paulista"],
			"rows":[{"elements":[{"status":"OK","distance":{"text":"3.2 km","value":3249},"duration":{"text":"9 mins","value":540}}]}]
		}`))
	})

	resp, err := client.DistanceMatrix(context.Background(), "01010-000", "-23.5,-46.6")
	require.NoError(t, err)
	assert.False(t, resp.Anomalous())

	res := resp.Result()
	assert.True(t, res.Resolvable())
	assert.Equal(t, 3249, res.DistanceMeters)
	assert.Equal(t, 540, res.DurationSeconds)
	assert.Equal(t, 3.2, res.Kilometers())
}

func TestDistanceMatrixResponse_Anomalous(t *testing.T) {
	ok := []providers.DistanceMatrixRow{{Elements: []providers.DistanceMatrixElement{{
		Status:   providers.StatusOK,
		Distance: &providers.TextValuePair{Value: 1000},
	}}}}

	cases := []struct {
		name string
		resp *providers.DistanceMatrixResponse
		want bool
	}{
		{"nil response", nil, true},
		{"empty origins", &providers.DistanceMatrixResponse{DestinationAddresses: []string{"b"}, Rows: ok}, true},
		{"empty destinations", &providers.DistanceMatrixResponse{OriginAddresses: []string{"a"}, Rows: ok}, true},
		{"element not found", &providers.DistanceMatrixResponse{
			OriginAddresses:      []string{"a"},
			DestinationAddresses: []string{"b"},
			Rows:                 []providers.DistanceMatrixRow{{Elements: []providers.DistanceMatrixElement{{Status: "NOT_FOUND"}}}},
		}, true},
		{"no rows", &providers.DistanceMatrixResponse{OriginAddresses: []string{"a"}, DestinationAddresses: []string{"b"}}, true},
		{"healthy", &providers.DistanceMatrixResponse{OriginAddresses: []string{"a"}, DestinationAddresses: []string{"b"}, Rows: ok}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.resp.Anomalous())
		})
	}
}

func TestDistanceMatrixResponse_OKWithoutDistance(t *testing.T) {
	resp := &providers.DistanceMatrixResponse{
		OriginAddresses:      []string{"a"},
		DestinationAddresses: []string{"b"},
		Rows:                 []providers.DistanceMatrixRow{{Elements: []providers.DistanceMatrixElement{{Status: providers.StatusOK}}}},
	}

	res := resp.Result()
	assert.False(t, res.Resolvable())
	assert.Equal(t, providers.StatusMissingDistance, res.Status)
}

func TestMetersToKilometers(t *testing.T) {
	cases := []struct {
		meters int
		want   float64
	}{
		{430000, 430.0},
		{3249, 3.2},
		{1250, 1.3},
		{1249, 1.2},
		{50000, 50.0},
		{50049, 50.0},
		{50050, 50.1},
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, providers.MetersToKilometers(tc.meters), "meters=%d", tc.meters)
	}
}
