package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/config"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/corridor"
)

func TestWriteCorridorLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corridor_output_log.txt")

	res := &corridor.Result{
		Corridors:       corridorFixture(),
		PairsEvaluated:  3,
		PairsWithinBand: 2,
		MetrosScored:    3,
		MetrosSkipped:   1,
	}
	cfg := config.CorridorConfig{MinDistanceMi: 100, MaxDistanceMi: 500, TopN: 100}

	require.NoError(t, WriteCorridorLog(path, res, cfg, 2))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "Band: 100-500 mi  |  Top N: 100")
	assert.Contains(t, text, "1. Corridor: Chicago-Naperville-Elgin, IL-IN-WI ↔ Detroit-Warren-Dearborn, MI")
	assert.Contains(t, text, "   From: 41.8500, -87.6500  |  To: 42.3314, -83.0458")
	assert.Contains(t, text, "   Distance: 238.3 mi  |  Score: 712,000,000")
	assert.Contains(t, text, "   Cities (From: Chicago-Naperville-Elgin, IL-IN-WI):")
	assert.Contains(t, text, "      - Chicago, IL → (41.8500, -87.6500)  Pop: 2,665,039")
	assert.Contains(t, text, "      - Elgin, IL → (42.0354, -88.2826)  Pop: N/A")
	assert.Contains(t, text, "   Cities (To: Detroit-Warren-Dearborn, MI):")
	assert.Contains(t, text, "2. Corridor: Chicago-Naperville-Elgin, IL-IN-WI ↔ St. Louis, MO-IL")

	assert.Contains(t, text, "Metros loaded: 4  |  Metros skipped (no population): 1")
	assert.Contains(t, text, "Pairs evaluated: 3  |  Within band: 2  |  Ranked: 2")
}

func TestWriteCorridorLog_NoCorridors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corridor_output_log.txt")

	res := &corridor.Result{PairsEvaluated: 10, MetrosScored: 5}
	cfg := config.CorridorConfig{MinDistanceMi: 100, MaxDistanceMi: 500, TopN: 100}

	require.NoError(t, WriteCorridorLog(path, res, cfg, 0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.NotContains(t, text, "1. Corridor:")
	assert.Contains(t, text, "Pairs evaluated: 10  |  Within band: 0  |  Ranked: 0")
}
