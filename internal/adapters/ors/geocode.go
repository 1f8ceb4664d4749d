package ors

import (
	"context"
	"encoding/json"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"net/http"
	"strconv"
	"strings"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// Search resolves free text to at most limit places using
// OpenRouteService (/geocode/search). No match is an empty result.
func (c *Client) Search(
	ctx context.Context,
	text string,
	limit int,
) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "ors.geocode")(&err)

	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return []domain.Place{}, nil
	}
	if limit <= 0 {
		limit = 1
	}

	endpoint := c.baseURL + "/geocode/search"

	resp, err := c.doWithRetry(ctx, "geocode", func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", text)
		q.Set("size", strconv.Itoa(limit))
		if c.country != "" {
			q.Set("boundary.country", c.country)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", text, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	out := make([]domain.Place, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		coords := f.Geometry.Coordinates
		if len(coords) < 2 {
			return nil, fmt.Errorf("invalid coordinate format for %q", text)
		}

		label := f.Properties.Label
		if label == "" {
			label = text
		}

		out = append(out, domain.Place{
			Label:       label,
			Coordinates: domain.Coordinates{Lon: coords[0], Lat: coords[1]},
		})
		if len(out) == limit {
			break
		}
	}

	return out, nil
}
