package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWeatherClientCurrent(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Paris",
			"main": {"temp": 18.4, "feels_like": 18.0, "humidity": 63},
			"weather": [{"description": "scattered clouds", "icon": "03d"}],
			"wind": {"speed": 4.1},
			"sys": {"country": "FR"}
		}`))
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.URL, "test-key")
	report, err := c.Current(context.Background(), "paris")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if gotPath != "/data/2.5/weather" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotQuery != "q=paris&appid=test-key&units=metric" {
		t.Fatalf("query = %q", gotQuery)
	}
	if report.City != "Paris" || report.Country != "FR" {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Temp != "18.4" || report.Humidity != 63 || report.Description != "scattered clouds" {
		t.Fatalf("unexpected report: %+v", report)
	}
	// the provider's textual form survives decoding, trailing zero included
	if report.FeelsLike != "18.0" {
		t.Fatalf("feels_like = %q, want %q", report.FeelsLike, "18.0")
	}
}

func TestWeatherClientErrors(t *testing.T) {
	t.Run("no credential", func(t *testing.T) {
		c := NewWeatherClient("", "")
		_, err := c.Current(context.Background(), "paris")
		if KindOf(err) != KindNoCredential {
			t.Fatalf("kind = %q, want %q", KindOf(err), KindNoCredential)
		}
	})

	t.Run("non-2xx is transport", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
		}))
		defer srv.Close()

		c := NewWeatherClient(srv.URL, "test-key")
		_, err := c.Current(context.Background(), "nowhereville")
		if KindOf(err) != KindTransport {
			t.Fatalf("kind = %q, want %q", KindOf(err), KindTransport)
		}
	})

	t.Run("unreachable is transport", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		c := NewWeatherClient(srv.URL, "test-key")
		_, err := c.Current(context.Background(), "paris")
		if KindOf(err) != KindTransport {
			t.Fatalf("kind = %q, want %q", KindOf(err), KindTransport)
		}
	})

	t.Run("empty conditions is upstream", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"name":"Paris","weather":[]}`))
		}))
		defer srv.Close()

		c := NewWeatherClient(srv.URL, "test-key")
		_, err := c.Current(context.Background(), "paris")
		if KindOf(err) != KindUpstream {
			t.Fatalf("kind = %q, want %q", KindOf(err), KindUpstream)
		}
	})

	t.Run("malformed body is upstream", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>not json</html>`))
		}))
		defer srv.Close()

		c := NewWeatherClient(srv.URL, "test-key")
		_, err := c.Current(context.Background(), "paris")
		if KindOf(err) != KindUpstream {
			t.Fatalf("kind = %q, want %q", KindOf(err), KindUpstream)
		}
	})
}

func TestNewsClientTopHeadlines(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title": "First headline", "source": {"name": "BBC News"}},
				{"title": "Second headline", "source": {"name": "Reuters"}}
			]
		}`))
	}))
	defer srv.Close()

	c := NewNewsClient(srv.URL, "test-key")
	articles, err := c.TopHeadlines(context.Background(), "technology")
	if err != nil {
		t.Fatalf("TopHeadlines: %v", err)
	}
	if gotQuery != "category=technology&apiKey=test-key&pageSize=5" {
		t.Fatalf("query = %q", gotQuery)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "First headline" || articles[0].Source != "BBC News" {
		t.Fatalf("unexpected article: %+v", articles[0])
	}
}

func TestNewsClientErrors(t *testing.T) {
	t.Run("no credential", func(t *testing.T) {
		c := NewNewsClient("", "  ")
		_, err := c.TopHeadlines(context.Background(), "general")
		if KindOf(err) != KindNoCredential {
			t.Fatalf("kind = %q, want %q", KindOf(err), KindNoCredential)
		}
	})

	t.Run("non-2xx is transport", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"status":"error","code":"rateLimited"}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewNewsClient(srv.URL, "test-key")
		_, err := c.TopHeadlines(context.Background(), "general")
		if KindOf(err) != KindTransport {
			t.Fatalf("kind = %q, want %q", KindOf(err), KindTransport)
		}
	})
}

func TestExchangeClientPairRate(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{
			"result": "success",
			"conversion_rate": 0.9217,
			"time_last_update_utc": "Thu, 28 Aug 2026 00:00:01 +0000"
		}`))
	}))
	defer srv.Close()

	c := NewExchangeClient(srv.URL, "test-key")
	rate, err := c.PairRate(context.Background(), "USD", "EUR")
	if err != nil {
		t.Fatalf("PairRate: %v", err)
	}
	if gotPath != "/v6/test-key/pair/USD/EUR" {
		t.Fatalf("path = %q", gotPath)
	}
	if rate.Base != "USD" || rate.Target != "EUR" || rate.Rate != 0.9217 {
		t.Fatalf("unexpected rate: %+v", rate)
	}
	if rate.LastUpdated != "Thu, 28 Aug 2026 00:00:01 +0000" {
		t.Fatalf("last updated = %q", rate.LastUpdated)
	}
}

func TestExchangeClientErrors(t *testing.T) {
	t.Run("no credential", func(t *testing.T) {
		c := NewExchangeClient("", "")
		_, err := c.PairRate(context.Background(), "USD", "EUR")
		if KindOf(err) != KindNoCredential {
			t.Fatalf("kind = %q, want %q", KindOf(err), KindNoCredential)
		}
	})

	t.Run("error result is upstream", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
		}))
		defer srv.Close()

		c := NewExchangeClient(srv.URL, "test-key")
		_, err := c.PairRate(context.Background(), "USD", "XXX")
		if KindOf(err) != KindUpstream {
			t.Fatalf("kind = %q, want %q", KindOf(err), KindUpstream)
		}
	})
}

func TestKindOfPlainError(t *testing.T) {
	if kind := KindOf(context.DeadlineExceeded); kind != KindTransport {
		t.Fatalf("kind = %q, want %q", kind, KindTransport)
	}
}
