// Package weather wraps the OpenWeather current-conditions endpoint.
package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/application"
	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client fetches current conditions. Every call is a fresh upstream
// fetch; this path deliberately carries no deadline, retry or cache of
// its own, matching the proxy contract.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates the weather client. The http.Client must not carry a
// Timeout; the proxy contract leaves the upstream wait unbounded.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// CurrentByCity fetches metric current conditions for the city and
// returns the upstream status and body verbatim. Transport failures are
// wrapped as UpstreamError.
func (c *Client) CurrentByCity(ctx context.Context, city string) (*application.WeatherReport, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: "weather", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: "weather", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: "weather", Err: fmt.Errorf("read response: %w", err)}
	}

	return &application.WeatherReport{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
