package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
)

// DefaultCorreiosURL is the public Correios price and lead time endpoint.
const DefaultCorreiosURL = "https://www.correios.com.br/@@precosEPrazosView"

// CorreiosConfig configures the freight provider.
type CorreiosConfig struct {
	URL     string
	Timeout time.Duration
}

// CorreiosClient implements FreightProvider against the Correios quote endpoint.
type CorreiosClient struct {
	url        string
	httpClient *http.Client
}

// NewCorreiosClient creates a CorreiosClient.
func NewCorreiosClient(cfg CorreiosConfig) *CorreiosClient {
	endpoint := cfg.URL
	if endpoint == "" {
		endpoint = DefaultCorreiosURL
	}
	return &CorreiosClient{
		url:        endpoint,
		httpClient: newHTTPClient(cfg.Timeout),
	}
}

type correiosQuoteRequest struct {
	CepDestino  string `json:"cepDestino"`
	CepOrigem   string `json:"cepOrigem"`
	Comprimento string `json:"comprimento"`
	Largura     string `json:"largura"`
	Altura      string `json:"altura"`
}

type correiosQuote struct {
	PrecoAgencia string `json:"precoAgencia"`
	Prazo        string `json:"prazo"`
	URLTitulo    string `json:"urlTitulo"`
}

// QuoteFreight returns every service tier quoted for the parcel. Any failure
// yields an error and no quotes.
func (c *CorreiosClient) QuoteFreight(ctx context.Context, req models.FreightRequest) ([]models.FreightQuote, error) {
	payload := correiosQuoteRequest{
		CepDestino:  req.DestinationPostalCode,
		CepOrigem:   req.OriginPostalCode,
		Comprimento: req.Length,
		Largura:     req.Width,
		Altura:      req.Height,
	}

	var tiers []correiosQuote
	if err := doJSON(ctx, c.httpClient, http.MethodPost, c.url, payload, &tiers); err != nil {
		return nil, &ProviderError{
			Provider: ProviderCorreios,
			Op:       "freight",
			Params: map[string]string{
				"cepDestino":  req.DestinationPostalCode,
				"cepOrigem":   req.OriginPostalCode,
				"comprimento": req.Length,
				"largura":     req.Width,
				"altura":      req.Height,
			},
			Err: err,
		}
	}

	quotes := make([]models.FreightQuote, 0, len(tiers))
	for _, t := range tiers {
		quotes = append(quotes, models.FreightQuote{
			Price:        t.PrecoAgencia,
			LeadTimeDays: t.Prazo,
			ServiceTitle: t.URLTitulo,
		})
	}
	return quotes, nil
}
