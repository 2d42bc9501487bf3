package providers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
)

// DefaultOpenCageBaseURL is the OpenCage geocoding API root.
const DefaultOpenCageBaseURL = "https://api.opencagedata.com/geocode/v1"

// OpenCageConfig configures the secondary geocoding provider.
type OpenCageConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// OpenCageClient is the fallback geocoder used when the distance matrix cannot
// place an endpoint.
type OpenCageClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenCageClient creates an OpenCageClient.
func NewOpenCageClient(cfg OpenCageConfig) *OpenCageClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenCageBaseURL
	}
	return &OpenCageClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(cfg.Timeout),
	}
}

type openCageResponse struct {
	Results []struct {
		Formatted string `json:"formatted"`
		Geometry  struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
}

// FallbackGeocode returns the first OpenCage result. An empty result set is
// reported as found=false rather than an error.
func (o *OpenCageClient) FallbackGeocode(ctx context.Context, address string) (models.Coordinates, bool, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("key", o.apiKey)
	q.Set("limit", "1")

	var resp openCageResponse
	if err := doJSON(ctx, o.httpClient, http.MethodGet, o.baseURL+"/json?"+q.Encode(), nil, &resp); err != nil {
		return models.Coordinates{}, false, &ProviderError{
			Provider: ProviderOpenCage,
			Op:       "geocode",
			Params:   map[string]string{"address": address},
			Err:      err,
		}
	}

	if len(resp.Results) == 0 {
		return models.Coordinates{}, false, nil
	}

	g := resp.Results[0].Geometry
	return models.Coordinates{Lat: g.Lat, Lng: g.Lng}, true, nil
}
