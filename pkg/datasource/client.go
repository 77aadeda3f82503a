// Package datasource fetches live departure board data and normalizes it
// into raildata records.
package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/davwheat/rail-announcements-sub000/pkg/raildata"
)

const defaultBaseURL = "https://national-rail-api.davwheat.dev"

// Source is a live train data feed for one station at a time.
type Source interface {
	GetServices(ctx context.Context, crs string) ([]raildata.TrainService, error)
}

// DepartureBoardClient reads the staff departure board API. The zero value
// is not usable; construct with NewDepartureBoardClient.
type DepartureBoardClient struct {
	baseURL    string
	httpClient *http.Client

	// MaxServices caps the number of services per board fetch.
	MaxServices int

	// TimeWindowMins is how far ahead the board looks.
	TimeWindowMins int
}

func NewDepartureBoardClient(baseURL string) *DepartureBoardClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &DepartureBoardClient{
		baseURL:        baseURL,
		httpClient:     &http.Client{Timeout: 20 * time.Second},
		MaxServices:    10,
		TimeWindowMins: 30,
	}
}

// GetServices fetches the departure board for a station. Transient upstream
// failures are retried with exponential backoff until ctx is cancelled or
// the retry budget runs out.
func (c *DepartureBoardClient) GetServices(ctx context.Context, crs string) ([]raildata.TrainService, error) {
	url := fmt.Sprintf(
		"%s/staffdepartures/%s/%d?expand=true&timeOffset=0&timeWindow=%d",
		c.baseURL, crs, c.MaxServices, c.TimeWindowMins,
	)

	var response staffServicesResponse

	operation := func() error {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(request)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("departure board returned %s", resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("departure board returned %s", resp.Status))
		}

		return json.NewDecoder(resp.Body).Decode(&response)
	}

	retryPolicy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	if err := backoff.Retry(operation, backoff.WithMaxRetries(retryPolicy, 3)); err != nil {
		return nil, err
	}

	if response.ServicesAreUnavailable {
		return nil, fmt.Errorf("departure board for %s reports services unavailable", crs)
	}

	services := make([]raildata.TrainService, 0, len(response.TrainServices))
	for _, w := range response.TrainServices {
		services = append(services, convertService(w))
	}

	return services, nil
}
