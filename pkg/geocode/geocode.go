// Package geocode resolves street addresses and zipcodes to coordinates
// through the MapQuest open geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Location is a resolved point.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a free-form address or zipcode to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Location, error)
}

// MapQuest implements Geocoder against the MapQuest open API.
type MapQuest struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

const defaultBaseURL = "https://open.mapquestapi.com/geocoding/v1"

func NewMapQuest(apiKey string) *MapQuest {
	return &MapQuest{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (g *MapQuest) Geocode(ctx context.Context, address string) (Location, error) {
	q := url.Values{}
	q.Set("key", g.APIKey)
	q.Set("location", address)
	q.Set("maxResults", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/address?"+q.Encode(), nil)
	if err != nil {
		return Location{}, err
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			Locations []struct {
				LatLng struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"latLng"`
			} `json:"locations"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, err
	}
	if len(body.Results) == 0 || len(body.Results[0].Locations) == 0 {
		return Location{}, fmt.Errorf("geocode: no match for %q", address)
	}
	ll := body.Results[0].Locations[0].LatLng
	return Location{Latitude: ll.Lat, Longitude: ll.Lng}, nil
}
