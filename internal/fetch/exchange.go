package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type ExchangeClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewExchangeClient(baseURL, apiKey string) *ExchangeClient {
	if baseURL == "" {
		baseURL = "https://v6.exchangerate-api.com"
	}
	return &ExchangeClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type exchangeRateResp struct {
	Result            string  `json:"result"`
	ConversionRate    float64 `json:"conversion_rate"`
	TimeLastUpdateUTC string  `json:"time_last_update_utc"`
}

func (c *ExchangeClient) PairRate(ctx context.Context, base, target string) (*Rate, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, newError(KindNoCredential, errors.New("exchangerate api key not configured"))
	}
	if c.Client == nil {
		return nil, newError(KindTransport, errors.New("exchange: http client is nil"))
	}

	u := fmt.Sprintf("%s/v6/%s/pair/%s/%s",
		strings.TrimRight(c.BaseURL, "/"), url.PathEscape(c.APIKey), url.PathEscape(base), url.PathEscape(target))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, newError(KindTransport, err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, newError(KindTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return nil, newError(KindTransport, fmt.Errorf("exchange: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var decoded exchangeRateResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, newError(KindUpstream, err)
	}
	if decoded.Result != "success" {
		return nil, newError(KindUpstream, fmt.Errorf("exchange: result %q", decoded.Result))
	}

	return &Rate{
		Base:        base,
		Target:      target,
		Rate:        decoded.ConversionRate,
		LastUpdated: decoded.TimeLastUpdateUTC,
	}, nil
}
