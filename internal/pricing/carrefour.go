package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"epicerie/internal/units"
)

// CarrefourClient queries the Carrefour product search API for unit
// prices. Without an API key it answers from a small offline catalogue,
// so the whole pipeline works in development.
type CarrefourClient struct {
	apiKey  string
	apiURL  string
	httpCli *http.Client
}

func NewCarrefourClient() *CarrefourClient {
	apiURL := os.Getenv("CARREFOUR_API_URL")
	if apiURL == "" {
		apiURL = "https://api.carrefour.fr/v1"
	}

	return &CarrefourClient{
		apiKey: os.Getenv("CARREFOUR_API_KEY"),
		apiURL: apiURL,
		httpCli: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *CarrefourClient) LookupPrice(ctx context.Context, searchTerm string) (*Quote, error) {
	if searchTerm == "" {
		return nil, ErrUnresolved
	}

	if c.apiKey == "" {
		return c.mockLookup(searchTerm)
	}

	reqURL := fmt.Sprintf(
		"%s/products/search?q=%s&limit=1",
		c.apiURL,
		url.QueryEscape(searchTerm),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrUnresolved
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("carrefour api error: %s", string(raw))
	}

	var result struct {
		Products []struct {
			ID    string          `json:"id"`
			Name  string          `json:"name"`
			Price decimal.Decimal `json:"price"`
			Unit  string          `json:"unit"`
		} `json:"products"`
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}

	if len(result.Products) == 0 {
		return nil, ErrUnresolved
	}

	product := result.Products[0]

	unit, ok := parseProviderUnit(product.Unit)
	if !ok {
		return nil, ErrUnresolved
	}

	return &Quote{
		UnitPrice: product.Price,
		Currency:  "EUR",
		Unit:      unit,
	}, nil
}

// parseProviderUnit maps the provider's unit vocabulary onto ours.
func parseProviderUnit(raw string) (units.Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "kg":
		return units.Kg, true
	case "g":
		return units.G, true
	case "l":
		return units.L, true
	case "ml":
		return units.Ml, true
	case "unit", "unité", "piece", "pièce":
		return units.Count, true
	default:
		return "", false
	}
}

// --------------------------------------------------
// Offline catalogue (no API key)
// --------------------------------------------------

type mockProduct struct {
	price decimal.Decimal
	unit  units.Unit
}

var mockCatalogue = map[string]mockProduct{
	"tomate":  {decimal.RequireFromString("3.50"), units.Kg},
	"oignon":  {decimal.RequireFromString("1.80"), units.Kg},
	"carotte": {decimal.RequireFromString("2.20"), units.Kg},
	"poulet":  {decimal.RequireFromString("8.90"), units.Kg},
	"riz":     {decimal.RequireFromString("4.50"), units.Kg},
	"farine":  {decimal.RequireFromString("1.10"), units.Kg},
	"lait":    {decimal.RequireFromString("1.15"), units.L},
	"oeuf":    {decimal.RequireFromString("0.45"), units.Count},
}

func (c *CarrefourClient) mockLookup(searchTerm string) (*Quote, error) {
	term := strings.ToLower(searchTerm)
	for key, product := range mockCatalogue {
		if strings.Contains(term, key) {
			return &Quote{
				UnitPrice: product.price,
				Currency:  "EUR",
				Unit:      product.unit,
			}, nil
		}
	}
	return nil, ErrUnresolved
}
