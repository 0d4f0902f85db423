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

type NewsClient struct {
	BaseURL  string
	APIKey   string
	PageSize int
	Client   *http.Client
}

func NewNewsClient(baseURL, apiKey string) *NewsClient {
	if baseURL == "" {
		baseURL = "https://newsapi.org"
	}
	return &NewsClient{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		PageSize: 5,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type newsAPIResp struct {
	Status   string `json:"status"`
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (c *NewsClient) TopHeadlines(ctx context.Context, category string) ([]Article, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, newError(KindNoCredential, errors.New("newsapi key not configured"))
	}
	if c.Client == nil {
		return nil, newError(KindTransport, errors.New("news: http client is nil"))
	}

	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = 5
	}
	u := fmt.Sprintf("%s/v2/top-headlines?category=%s&apiKey=%s&pageSize=%d",
		strings.TrimRight(c.BaseURL, "/"), url.QueryEscape(category), url.QueryEscape(c.APIKey), pageSize)
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
		return nil, newError(KindTransport, fmt.Errorf("news: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var decoded newsAPIResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, newError(KindUpstream, err)
	}

	out := make([]Article, 0, len(decoded.Articles))
	for _, a := range decoded.Articles {
		out = append(out, Article{Title: a.Title, Source: a.Source.Name})
	}
	return out, nil
}
