// Package fetch holds the narrow clients for the external data providers the
// bot can consult: current weather, news headlines, and exchange rates. Every
// failure is classified into one of three kinds so the response layer can pick
// the right user-facing message without inspecting transport details.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindNoCredential means the provider key is not configured. No request
	// is attempted in this state.
	KindNoCredential ErrorKind = "NO_CREDENTIAL"
	// KindTransport covers network failures, timeouts, and non-2xx statuses.
	KindTransport ErrorKind = "TRANSPORT_FAILURE"
	// KindUpstream covers malformed or unsuccessful provider payloads.
	KindUpstream ErrorKind = "UPSTREAM_ERROR"
)

type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("fetch: %s", e.Kind)
	}
	return fmt.Sprintf("fetch: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf reports the classification of err, defaulting to KindTransport for
// errors that did not come out of this package.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindTransport
}

// WeatherReport carries the fields the weather formatter renders. The
// numeric fields keep the provider's textual form so a value sent as "20.0"
// renders as 20.0, not 20.
type WeatherReport struct {
	City        string
	Country     string
	Description string
	Icon        string
	Temp        json.Number
	FeelsLike   json.Number
	Humidity    int
	WindSpeed   json.Number
}

// Article is one news headline.
type Article struct {
	Title  string
	Source string
}

// Rate is a single currency pair conversion rate.
type Rate struct {
	Base        string
	Target      string
	Rate        float64
	LastUpdated string
}

type WeatherFetcher interface {
	Current(ctx context.Context, location string) (*WeatherReport, error)
}

type NewsFetcher interface {
	TopHeadlines(ctx context.Context, category string) ([]Article, error)
}

type RateFetcher interface {
	PairRate(ctx context.Context, base, target string) (*Rate, error)
}

// Sources bundles one fetcher per API intent. A single message issues at most
// one call on at most one of these.
type Sources struct {
	Weather  WeatherFetcher
	News     NewsFetcher
	Exchange RateFetcher
}
