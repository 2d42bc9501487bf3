package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
)

// DefaultGoogleMapsBaseURL is the Google Maps web services root.
const DefaultGoogleMapsBaseURL = "https://maps.googleapis.com/maps/api"

// GoogleMapsConfig configures the primary mapping provider.
type GoogleMapsConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// GoogleMapsClient calls the Google geocoding and distance matrix endpoints.
type GoogleMapsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleMapsClient creates a GoogleMapsClient.
func NewGoogleMapsClient(cfg GoogleMapsConfig) *GoogleMapsClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultGoogleMapsBaseURL
	}
	return &GoogleMapsClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(cfg.Timeout),
	}
}

// ---- Google API response structs ----

type googleGeocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// DistanceMatrixResponse is the subset of the distance matrix payload we consume.
type DistanceMatrixResponse struct {
	Status               string              `json:"status"`
	OriginAddresses      []string            `json:"origin_addresses"`
	DestinationAddresses []string            `json:"destination_addresses"`
	Rows                 []DistanceMatrixRow `json:"rows"`
}

// DistanceMatrixRow holds one origin's elements.
type DistanceMatrixRow struct {
	Elements []DistanceMatrixElement `json:"elements"`
}

// DistanceMatrixElement is the route between one origin and one destination.
type DistanceMatrixElement struct {
	Status   string         `json:"status"`
	Distance *TextValuePair `json:"distance,omitempty"`
	Duration *TextValuePair `json:"duration,omitempty"`
}

// TextValuePair is a Google "text + value" measurement.
type TextValuePair struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// FirstElement returns the single element of a one-to-one request, or the zero
// element when the response has none.
func (r *DistanceMatrixResponse) FirstElement() DistanceMatrixElement {
	if r == nil || len(r.Rows) == 0 || len(r.Rows[0].Elements) == 0 {
		return DistanceMatrixElement{}
	}
	return r.Rows[0].Elements[0]
}

// Anomalous reports whether the response cannot be used as is: either address
// list is empty or the element status is not OK.
func (r *DistanceMatrixResponse) Anomalous() bool {
	if r == nil || len(r.OriginAddresses) == 0 || len(r.DestinationAddresses) == 0 {
		return true
	}
	return r.FirstElement().Status != StatusOK
}

// Result converts the response into a DistanceResult.
func (r *DistanceMatrixResponse) Result() DistanceResult {
	el := r.FirstElement()
	res := DistanceResult{Status: el.Status}
	if el.Status == StatusOK && el.Distance == nil {
		res.Status = StatusMissingDistance
		return res
	}
	if el.Distance != nil {
		res.DistanceMeters = el.Distance.Value
	}
	if el.Duration != nil {
		res.DurationSeconds = el.Duration.Value
	}
	return res
}

// ---- Geocoder / DistanceMatrix implementation ----

// Geocode resolves an address to coordinates using the first result.
func (g *GoogleMapsClient) Geocode(ctx context.Context, address string) (models.Coordinates, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", g.apiKey)

	var resp googleGeocodeResponse
	if err := doJSON(ctx, g.httpClient, http.MethodGet, g.baseURL+"/geocode/json?"+q.Encode(), nil, &resp); err != nil {
		return models.Coordinates{}, g.providerError("geocode", map[string]string{"address": address}, err)
	}

	switch resp.Status {
	case "", StatusOK, "ZERO_RESULTS":
	default:
		return models.Coordinates{}, g.providerError("geocode", map[string]string{"address": address},
			fmt.Errorf("status %s: %s", resp.Status, resp.ErrorMessage))
	}

	if len(resp.Results) == 0 {
		return models.Coordinates{}, fmt.Errorf("google geocode %q: %w", address, ErrAddressNotFound)
	}

	loc := resp.Results[0].Geometry.Location
	return models.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// DistanceMatrix requests the route between one origin and one destination.
// Provider-level statuses are returned in the payload, not as errors.
func (g *GoogleMapsClient) DistanceMatrix(ctx context.Context, origin, destination string) (*DistanceMatrixResponse, error) {
	q := url.Values{}
	q.Set("origins", origin)
	q.Set("destinations", destination)
	q.Set("key", g.apiKey)

	var resp DistanceMatrixResponse
	if err := doJSON(ctx, g.httpClient, http.MethodGet, g.baseURL+"/distancematrix/json?"+q.Encode(), nil, &resp); err != nil {
		return nil, g.providerError("distancematrix", map[string]string{
			"origin":      origin,
			"destination": destination,
		}, err)
	}
	return &resp, nil
}

func (g *GoogleMapsClient) providerError(op string, params map[string]string, err error) *ProviderError {
	return &ProviderError{Provider: ProviderGoogle, Op: op, Params: params, Err: err}
}
