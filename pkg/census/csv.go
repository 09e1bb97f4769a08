package census

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/rotisserie/eris"
)

// Offline CSV tables use the API's own column headers, so a response
// saved to disk round-trips without editing.
type placeCSVRow struct {
	Name       string `csv:"NAME"`
	Population string `csv:"B01001_001E"`
	StateFIPS  string `csv:"state"`
	PlaceFIPS  string `csv:"place"`
}

type metroCSVRow struct {
	Name       string `csv:"NAME"`
	Population string `csv:"B01001_001E"`
	GeoID      string `csv:"metropolitan statistical area/micropolitan statistical area"`
}

// LoadPlaceCSV reads place populations from an offline CSV table.
func LoadPlaceCSV(path string) ([]PopulationRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "census: open place csv %s", path)
	}
	defer file.Close() //nolint:errcheck

	var records []placeCSVRow
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, eris.Wrapf(err, "census: parse place csv %s", path)
	}

	rows := make([]PopulationRow, 0, len(records))
	for _, rec := range records {
		pop, ok := parsePopulation(rec.Population)
		rows = append(rows, PopulationRow{
			Name:          rec.Name,
			GeoID:         rec.StateFIPS + rec.PlaceFIPS,
			StateFIPS:     rec.StateFIPS,
			Population:    pop,
			HasPopulation: ok,
		})
	}
	return rows, nil
}

// LoadMetroCSV reads CBSA populations from an offline CSV table.
func LoadMetroCSV(path string) ([]PopulationRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "census: open metro csv %s", path)
	}
	defer file.Close() //nolint:errcheck

	var records []metroCSVRow
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, eris.Wrapf(err, "census: parse metro csv %s", path)
	}

	rows := make([]PopulationRow, 0, len(records))
	for _, rec := range records {
		pop, ok := parsePopulation(rec.Population)
		rows = append(rows, PopulationRow{
			Name:          rec.Name,
			GeoID:         rec.GeoID,
			Population:    pop,
			HasPopulation: ok,
		})
	}
	return rows, nil
}
