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

type WeatherClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewWeatherClient(baseURL, apiKey string) *WeatherClient {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org"
	}
	return &WeatherClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type openWeatherResp struct {
	Name string `json:"name"`
	Main struct {
		Temp      json.Number `json:"temp"`
		FeelsLike json.Number `json:"feels_like"`
		Humidity  int         `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed json.Number `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

func (c *WeatherClient) Current(ctx context.Context, location string) (*WeatherReport, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, newError(KindNoCredential, errors.New("openweathermap api key not configured"))
	}
	if c.Client == nil {
		return nil, newError(KindTransport, errors.New("weather: http client is nil"))
	}

	u := fmt.Sprintf("%s/data/2.5/weather?q=%s&appid=%s&units=metric",
		strings.TrimRight(c.BaseURL, "/"), url.QueryEscape(location), url.QueryEscape(c.APIKey))
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
		return nil, newError(KindTransport, fmt.Errorf("weather: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var decoded openWeatherResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, newError(KindUpstream, err)
	}
	if len(decoded.Weather) == 0 {
		return nil, newError(KindUpstream, errors.New("weather: empty conditions in response"))
	}

	return &WeatherReport{
		City:        decoded.Name,
		Country:     decoded.Sys.Country,
		Description: decoded.Weather[0].Description,
		Icon:        decoded.Weather[0].Icon,
		Temp:        decoded.Main.Temp,
		FeelsLike:   decoded.Main.FeelsLike,
		Humidity:    decoded.Main.Humidity,
		WindSpeed:   decoded.Wind.Speed,
	}, nil
}
