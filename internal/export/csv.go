package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// rankingColumns defines the ordered columns of the CSV and XLSX
// ranking tables.
var rankingColumns = []string{
	"rank",
	"from",
	"to",
	"population_a",
	"population_b",
	"distance_mi",
	"score",
}

// WriteCSV writes the ranked corridors as a CSV table.
func WriteCSV(path string, corridors []model.Corridor) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(rankingColumns); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	for i := range corridors {
		if err := w.Write(rankingRow(&corridors[i])); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}

	return nil
}

// rankingRow maps a corridor to one table row.
func rankingRow(c *model.Corridor) []string {
	return []string{
		strconv.Itoa(c.Rank),
		c.From.ShortName(),
		c.To.ShortName(),
		strconv.FormatInt(c.From.Population, 10),
		strconv.FormatInt(c.To.Population, 10),
		strconv.FormatFloat(c.DistanceMi, 'f', 1, 64),
		strconv.FormatFloat(c.Score, 'f', 0, 64),
	}
}
