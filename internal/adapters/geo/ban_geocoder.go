package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/platform/obs"
	"visit-planner-service/internal/ports"
)

// GeocodeCache persists address -> coordinates resolutions across solves.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// BANGeocoder implements the Geocoder port against the French national
// address base (api-adresse.data.gouv.fr).
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - External API calls with retry/backoff
//
// The geocoder is safe for concurrent use. An empty result set is an
// expected "no match", never an error.
type BANGeocoder struct {
	session *http.Client
	baseURL string
	cache   GeocodeCache
}

func NewBANGeocoder(cache GeocodeCache) *BANGeocoder {
	return &BANGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api-adresse.data.gouv.fr",
		cache:   cache,
	}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (b *BANGeocoder) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cacheKey builds the lookup key for one address.
func (b *BANGeocoder) cacheKey(addr ports.Address) string {
	return b.normalize(addr.Line + " " + addr.Postcode)
}

type banResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Score float64 `json:"score"`
			Label string  `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// Resolve looks one address up, consulting the cache first.
func (b *BANGeocoder) Resolve(ctx context.Context, address string, postcode string) (domain.Coordinates, bool, error) {
	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, false, nil
	}

	addr := ports.Address{Line: address, Postcode: postcode}
	results, err := b.ResolveMany(ctx, []ports.Address{addr})
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("resolve %q: %w", address, err)
	}

	coord, ok := results[addr]
	return coord, ok, nil
}

// ResolveMany resolves a batch of addresses. Addresses without a match are
// absent from the result; cache hits skip the API entirely.
func (b *BANGeocoder) ResolveMany(ctx context.Context, addresses []ports.Address) (_ map[ports.Address]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ban.ResolveMany")(&err)

	keyFor := make(map[ports.Address]string, len(addresses))
	keys := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if strings.TrimSpace(a.Line) == "" {
			continue
		}
		k := b.cacheKey(a)
		if _, dup := keyFor[a]; dup {
			continue
		}
		keyFor[a] = k
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return map[ports.Address]domain.Coordinates{}, nil
	}

	hits := make(map[string]domain.Coordinates)
	if b.cache != nil {
		var err error
		hits, err = b.cache.GetMany(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("geocode cache read: %w", err)
		}
	}

	fresh := make(map[string]domain.Coordinates)
	for addr, key := range keyFor {
		if _, ok := hits[key]; ok {
			continue
		}
		coord, ok, err := b.fetch(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", key, err)
		}
		if ok {
			fresh[key] = coord
		}
	}

	if b.cache != nil && len(fresh) > 0 {
		if err := b.cache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	out := make(map[ports.Address]domain.Coordinates, len(addresses))
	for addr, key := range keyFor {
		if c, ok := hits[key]; ok {
			out[addr] = c
			continue
		}
		if c, ok := fresh[key]; ok {
			out[addr] = c
		}
	}
	return out, nil
}

// fetch performs one /search call. The API orders features by relevance,
// so the first feature is the best-scoring match.
func (b *BANGeocoder) fetch(ctx context.Context, addr ports.Address) (domain.Coordinates, bool, error) {
	endpoint := b.baseURL + "/search/"
	line := b.normalize(addr.Line)

	resp, err := b.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := b.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", line)
		if pc := strings.TrimSpace(addr.Postcode); pc != "" {
			q.Set("postcode", pc)
		}
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded banResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, false, nil
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, false, fmt.Errorf("invalid coordinate format for %q", line)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, true, nil
}
