package export

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/config"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/corridor"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// WriteCorridorLog writes the verbose plain-text log: a run header,
// every in-band pair in enumeration order with its anchor breakdown,
// and a footer with the run counts.
func WriteCorridorLog(path string, res *corridor.Result, cfg config.CorridorConfig, ranked int) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create corridor log")
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	fmt.Fprintf(w, "Corridor run log\n")
	fmt.Fprintf(w, "Band: %.0f-%.0f mi  |  Top N: %d\n\n",
		cfg.MinDistanceMi, cfg.MaxDistanceMi, cfg.TopN)

	for i := range res.Corridors {
		writeCorridorEntry(w, &res.Corridors[i])
	}

	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Metros loaded: %s  |  Metros skipped (no population): %s\n",
		groupDigits(strconv.Itoa(res.MetrosScored+res.MetrosSkipped)),
		groupDigits(strconv.Itoa(res.MetrosSkipped)))
	fmt.Fprintf(w, "Pairs evaluated: %s  |  Within band: %s  |  Ranked: %s\n",
		groupDigits(strconv.Itoa(res.PairsEvaluated)),
		groupDigits(strconv.Itoa(res.PairsWithinBand)),
		groupDigits(strconv.Itoa(ranked)))

	if err := w.Flush(); err != nil {
		return eris.Wrap(err, "export: write corridor log")
	}
	return nil
}

func writeCorridorEntry(w *bufio.Writer, c *model.Corridor) {
	fmt.Fprintf(w, "%d. Corridor: %s ↔ %s\n", c.Seq, c.From.Name, c.To.Name)
	fmt.Fprintf(w, "   From: %.4f, %.4f  |  To: %.4f, %.4f\n",
		c.From.Anchor.Lat, c.From.Anchor.Lon, c.To.Anchor.Lat, c.To.Anchor.Lon)
	fmt.Fprintf(w, "   Distance: %.1f mi  |  Score: %s\n",
		c.DistanceMi, groupDigits(fmt.Sprintf("%.0f", c.Score)))

	writeCityBreakdown(w, "From", c.From)
	writeCityBreakdown(w, "To", c.To)
	fmt.Fprintln(w)
}

func writeCityBreakdown(w *bufio.Writer, side string, m *model.MetroArea) {
	fmt.Fprintf(w, "   Cities (%s: %s):\n", side, m.Name)
	for _, city := range m.AnchorCities {
		pop := "N/A"
		if city.HasPopulation {
			pop = groupDigits(strconv.FormatInt(city.Population, 10))
		}
		fmt.Fprintf(w, "      - %s, %s → (%.4f, %.4f)  Pop: %s\n",
			city.City, city.State, city.Point.Lat, city.Point.Lon, pop)
	}
}
