package census

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// metroColumn is the geography column the API returns for CBSA queries.
const metroColumn = "metropolitan statistical area/micropolitan statistical area"

// PlacePopulations fetches the population of every place via the
// configured place dataset.
func (c *apiClient) PlacePopulations(ctx context.Context) ([]PopulationRow, error) {
	table, err := c.fetch(ctx, c.placeDataset, "place:*")
	if err != nil {
		return nil, err
	}
	return c.parsePlaces(table)
}

// MetroPopulations fetches the population of every metropolitan and
// micropolitan statistical area via the configured metro dataset.
func (c *apiClient) MetroPopulations(ctx context.Context) ([]PopulationRow, error) {
	table, err := c.fetch(ctx, c.metroDataset, metroColumn+":*")
	if err != nil {
		return nil, err
	}
	return c.parseMetros(table)
}

// fetch performs one API call and decodes the array-of-arrays payload.
// The first row is the column header.
func (c *apiClient) fetch(ctx context.Context, dataset, forClause string) ([][]string, error) {
	cacheKey := fmt.Sprintf("%d/%s/%s/%s", c.year, dataset, c.variable, forClause)

	if c.cache != nil {
		body, err := c.cache.Get(ctx, cacheKey)
		if err != nil {
			return nil, err
		}
		if body != nil {
			zap.L().Debug("census: cache hit", zap.String("key", cacheKey))
			return decodeTable(body)
		}
	}

	params := url.Values{
		"get": {"NAME," + c.variable},
		"for": {forClause},
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	reqURL := fmt.Sprintf("%s/%d/%s?%s", c.baseURL, c.year, dataset, params.Encode())

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "census: rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "census: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "census: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("census: api returned status %d for %s %s", resp.StatusCode, dataset, forClause)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "census: read body")
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, cacheKey, body, c.cacheTTL); err != nil {
			zap.L().Warn("census: cache write failed", zap.Error(err))
		}
	}

	return decodeTable(body)
}

func decodeTable(body []byte) ([][]string, error) {
	var table [][]string
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, eris.Wrap(err, "census: parse response")
	}
	if len(table) < 1 {
		return nil, eris.New("census: empty response")
	}
	return table, nil
}

func (c *apiClient) parsePlaces(table [][]string) ([]PopulationRow, error) {
	header := table[0]
	nameIdx := columnIndex(header, "NAME")
	popIdx := columnIndex(header, c.variable)
	stateIdx := columnIndex(header, "state")
	placeIdx := columnIndex(header, "place")
	if nameIdx < 0 || popIdx < 0 || stateIdx < 0 || placeIdx < 0 {
		return nil, eris.Errorf("census: place response missing columns, got %v", header)
	}

	rows := make([]PopulationRow, 0, len(table)-1)
	for _, rec := range table[1:] {
		if len(rec) != len(header) {
			continue
		}
		pop, ok := parsePopulation(rec[popIdx])
		rows = append(rows, PopulationRow{
			Name:          rec[nameIdx],
			GeoID:         rec[stateIdx] + rec[placeIdx],
			StateFIPS:     rec[stateIdx],
			Population:    pop,
			HasPopulation: ok,
		})
	}
	return rows, nil
}

func (c *apiClient) parseMetros(table [][]string) ([]PopulationRow, error) {
	header := table[0]
	nameIdx := columnIndex(header, "NAME")
	popIdx := columnIndex(header, c.variable)
	geoIdx := columnIndex(header, metroColumn)
	if nameIdx < 0 || popIdx < 0 || geoIdx < 0 {
		return nil, eris.Errorf("census: metro response missing columns, got %v", header)
	}

	rows := make([]PopulationRow, 0, len(table)-1)
	for _, rec := range table[1:] {
		if len(rec) != len(header) {
			continue
		}
		pop, ok := parsePopulation(rec[popIdx])
		rows = append(rows, PopulationRow{
			Name:          rec[nameIdx],
			GeoID:         rec[geoIdx],
			Population:    pop,
			HasPopulation: ok,
		})
	}
	return rows, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// parsePopulation parses an ACS value. Blank and non-numeric values are
// reported as missing rather than errors; the ACS uses them for
// geographies without an estimate.
func parsePopulation(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}
