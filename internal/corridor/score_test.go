package corridor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/config"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/geo"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

func metro(geoid, name string, pop int64, lat, lon float64) model.MetroArea {
	return model.MetroArea{
		GEOID:         geoid,
		Name:          name,
		LSAD:          "M1",
		Population:    pop,
		HasPopulation: pop > 0,
		Anchor:        model.LatLon{Lat: lat, Lon: lon},
		AnchorSource:  model.AnchorSourceWeighted,
	}
}

func defaultBand() config.CorridorConfig {
	return config.CorridorConfig{MinDistanceMi: 100, MaxDistanceMi: 500, TopN: 100}
}

// northOf places a point the given number of miles due north of lat.
// Along a meridian the haversine distance is exact, so fixtures can be
// built at known distances.
func northOf(lat, miles float64) float64 {
	return lat + miles/milesPerDegreeLat
}

func TestScore_GravityFormula(t *testing.T) {
	metros := []model.MetroArea{
		metro("10000", "Alpha, AA", 1_000_000, 40, -100),
		metro("20000", "Beta, BB", 500_000, northOf(40, 200), -100),
	}

	res := Score(metros, defaultBand())

	require.Len(t, res.Corridors, 1)
	c := res.Corridors[0]
	assert.Equal(t, "10000", c.From.GEOID)
	assert.Equal(t, "20000", c.To.GEOID)
	assert.Equal(t, 1, c.Seq)
	assert.InDelta(t, 200, c.DistanceMi, 1e-6)
	assert.InDelta(t, 12_500_000, c.Score, 0.01)

	assert.Equal(t, 1, res.PairsEvaluated)
	assert.Equal(t, 1, res.PairsWithinBand)
	assert.Equal(t, 2, res.MetrosScored)
	assert.Equal(t, 0, res.MetrosSkipped)
}

func TestScore_MonotoneInDistanceAndPopulation(t *testing.T) {
	score := func(pop int64, miles float64) float64 {
		metros := []model.MetroArea{
			metro("10000", "Alpha, AA", 1_000_000, 40, -100),
			metro("20000", "Beta, BB", pop, northOf(40, miles), -100),
		}
		res := Score(metros, defaultBand())
		require.Len(t, res.Corridors, 1)
		return res.Corridors[0].Score
	}

	assert.Less(t, score(500_000, 400), score(500_000, 200))
	assert.Greater(t, score(900_000, 200), score(500_000, 200))
}

func TestScore_BandBoundariesInclusive(t *testing.T) {
	a := metro("10000", "Alpha, AA", 100_000, 38, -95)
	b := metro("20000", "Beta, BB", 100_000, 41.5, -95)
	d := geo.DistanceMi(a.Anchor, b.Anchor)
	metros := []model.MetroArea{a, b}

	// A band collapsed onto the measured distance keeps the pair, so
	// both boundaries admit equality.
	res := Score(metros, config.CorridorConfig{MinDistanceMi: d, MaxDistanceMi: d, TopN: 100})
	assert.Len(t, res.Corridors, 1)

	res = Score(metros, config.CorridorConfig{MinDistanceMi: d + 1e-6, MaxDistanceMi: 500, TopN: 100})
	assert.Empty(t, res.Corridors, "below the minimum must be discarded")

	res = Score(metros, config.CorridorConfig{MinDistanceMi: 100, MaxDistanceMi: d - 1e-6, TopN: 100})
	assert.Empty(t, res.Corridors, "above the maximum must be discarded")
}

func TestScore_OutsideBandDiscarded(t *testing.T) {
	metros := []model.MetroArea{
		metro("10000", "Alpha, AA", 100_000, 40, -100),
		metro("20000", "Near, BB", 100_000, northOf(40, 50), -100),
		metro("30000", "Far, CC", 100_000, northOf(40, 600), -100),
	}

	res := Score(metros, defaultBand())

	// Near-Far is 550 mi apart and also out of band.
	assert.Empty(t, res.Corridors)
	assert.Equal(t, 3, res.PairsEvaluated)
	assert.Equal(t, 0, res.PairsWithinBand)
}

func TestScore_CoincidentAnchorsDiscarded(t *testing.T) {
	metros := []model.MetroArea{
		metro("10000", "Alpha, AA", 100_000, 40, -100),
		metro("20000", "Shadow, AA", 200_000, 40, -100),
	}

	res := Score(metros, config.CorridorConfig{MinDistanceMi: 0, MaxDistanceMi: 500, TopN: 100})

	assert.Empty(t, res.Corridors)
	assert.Equal(t, 1, res.PairsEvaluated)
	assert.Equal(t, 0, res.PairsWithinBand)
}

func TestScore_SkipsMetrosWithoutPopulation(t *testing.T) {
	metros := []model.MetroArea{
		metro("10000", "Alpha, AA", 1_000_000, 40, -100),
		metro("20000", "Blank, BB", 0, northOf(40, 150), -100),
		metro("30000", "Gamma, CC", 500_000, northOf(40, 300), -100),
	}

	res := Score(metros, defaultBand())

	assert.Equal(t, 1, res.MetrosSkipped)
	assert.Equal(t, 2, res.MetrosScored)
	assert.Equal(t, 1, res.PairsEvaluated)
	require.Len(t, res.Corridors, 1)
	assert.Equal(t, "10000", res.Corridors[0].From.GEOID)
	assert.Equal(t, "30000", res.Corridors[0].To.GEOID)
}

func TestScore_NoMetros(t *testing.T) {
	res := Score(nil, defaultBand())

	assert.Empty(t, res.Corridors)
	assert.Equal(t, 0, res.PairsEvaluated)
	assert.Equal(t, 0, res.MetrosScored)
}

func TestScore_MatchesExhaustiveEnumeration(t *testing.T) {
	// A 6x6 grid spanning the interior of the band in both axes. The
	// r-tree pre-filter must reproduce the plain double loop exactly,
	// sequence numbers included.
	var metros []model.MetroArea
	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			n := row*6 + col
			metros = append(metros, metro(
				fmt.Sprintf("%05d", 10000+n),
				fmt.Sprintf("Grid %d, XX", n),
				int64(100_000+1_000*n),
				30+float64(row)*3,
				-110+float64(col)*5,
			))
		}
	}
	cfg := defaultBand()

	type pair struct {
		from, to string
		seq      int
		score    float64
	}
	var want []pair
	seq := 0
	for i := range metros {
		for j := i + 1; j < len(metros); j++ {
			d := geo.DistanceMi(metros[i].Anchor, metros[j].Anchor)
			if d < cfg.MinDistanceMi || d > cfg.MaxDistanceMi {
				continue
			}
			seq++
			want = append(want, pair{
				from:  metros[i].GEOID,
				to:    metros[j].GEOID,
				seq:   seq,
				score: float64(metros[i].Population) * float64(metros[j].Population) / (d * d),
			})
		}
	}
	require.NotEmpty(t, want, "grid spacing must yield in-band pairs")

	res := Score(metros, cfg)

	require.Len(t, res.Corridors, len(want))
	for k, c := range res.Corridors {
		assert.Equal(t, want[k].from, c.From.GEOID)
		assert.Equal(t, want[k].to, c.To.GEOID)
		assert.Equal(t, want[k].seq, c.Seq)
		assert.InDelta(t, want[k].score, c.Score, 1e-6)
	}
	assert.Equal(t, 36*35/2, res.PairsEvaluated)
}
