// Package corridor enumerates metro pairs, scores them with a gravity
// model, and ranks the results.
package corridor

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"go.uber.org/zap"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/config"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/geo"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// milesPerDegreeLat is the north-south extent of one degree of latitude
// on the scoring sphere.
const milesPerDegreeLat = geo.EarthRadiusMi * math.Pi / 180

// coincidentMi is the distance below which two anchors count as the
// same point. Such pairs are discarded rather than divided by.
const coincidentMi = 1e-9

// pointExtent is the edge length of the degenerate rectangle stored per
// anchor. rtreego rejects zero-length sides.
const pointExtent = 1e-9

// boxPad widens the candidate search box so pairs sitting exactly on
// the distance boundary cannot be lost to rounding. The exact distance
// check still decides membership.
const boxPad = 1.000001

// Result holds every corridor inside the distance band plus the
// counters reported in the run summary.
type Result struct {
	// Corridors is in enumeration order: ascending Seq.
	Corridors []model.Corridor

	PairsEvaluated  int // unordered pairs of scored metros
	PairsWithinBand int
	MetrosScored    int
	MetrosSkipped   int // excluded for missing population
}

// anchorEntry adapts one metro anchor to the r-tree Spatial interface.
type anchorEntry struct {
	idx  int // position in the scored-metro slice
	rect *rtreego.Rect
}

func (e *anchorEntry) Bounds() *rtreego.Rect { return e.rect }

// Score enumerates every unordered pair of metros, keeps those whose
// anchor distance falls inside [cfg.MinDistanceMi, cfg.MaxDistanceMi],
// and scores each as popA*popB/distance^2. Corridors come back in
// enumeration order with 1-based Seq. Metros without a population are
// skipped with a warning. An r-tree over the anchors prunes pairs that
// cannot reach the band; the output is identical to the exhaustive
// double loop.
func Score(metros []model.MetroArea, cfg config.CorridorConfig) *Result {
	res := &Result{}

	scored := make([]*model.MetroArea, 0, len(metros))
	for i := range metros {
		if !metros[i].HasPopulation {
			zap.L().Warn("corridor: metro has no population, skipping",
				zap.String("geoid", metros[i].GEOID),
				zap.String("name", metros[i].Name),
			)
			res.MetrosSkipped++
			continue
		}
		scored = append(scored, &metros[i])
	}
	res.MetrosScored = len(scored)
	res.PairsEvaluated = len(scored) * (len(scored) - 1) / 2

	tree := buildAnchorTree(scored)

	seq := 0
	for i, a := range scored {
		for _, j := range candidateIndexes(tree, a.Anchor, cfg.MaxDistanceMi, i) {
			b := scored[j]
			d := geo.DistanceMi(a.Anchor, b.Anchor)
			if d < coincidentMi {
				zap.L().Warn("corridor: coincident anchors, discarding pair",
					zap.String("from", a.Name),
					zap.String("to", b.Name),
				)
				continue
			}
			if d < cfg.MinDistanceMi || d > cfg.MaxDistanceMi {
				continue
			}
			seq++
			res.Corridors = append(res.Corridors, model.Corridor{
				From:       a,
				To:         b,
				Seq:        seq,
				DistanceMi: d,
				Score:      float64(a.Population) * float64(b.Population) / (d * d),
			})
		}
	}
	res.PairsWithinBand = len(res.Corridors)

	zap.L().Info("corridor: scoring complete",
		zap.Int("metros_scored", res.MetrosScored),
		zap.Int("metros_skipped", res.MetrosSkipped),
		zap.Int("pairs_evaluated", res.PairsEvaluated),
		zap.Int("pairs_within_band", res.PairsWithinBand),
	)

	return res
}

func buildAnchorTree(scored []*model.MetroArea) *rtreego.Rtree {
	entries := make([]rtreego.Spatial, len(scored))
	for i, m := range scored {
		r, err := rtreego.NewRect(
			rtreego.Point{m.Anchor.Lon, m.Anchor.Lat},
			[]float64{pointExtent, pointExtent},
		)
		if err != nil {
			panic(err)
		}
		entries[i] = &anchorEntry{idx: i, rect: r}
	}
	return rtreego.NewTree(2, 25, 50, entries...)
}

// candidateIndexes returns the positions j > i of anchors whose
// envelope intersects the search box around p, ascending so that
// enumeration order matches the exhaustive i < j loop.
func candidateIndexes(tree *rtreego.Rtree, p model.LatLon, maxMi float64, i int) []int {
	var idxs []int
	for _, sp := range tree.SearchIntersect(searchBox(p, maxMi)) {
		e := sp.(*anchorEntry)
		if e.idx > i {
			idxs = append(idxs, e.idx)
		}
	}
	sort.Ints(idxs)
	return idxs
}

// searchBox is the lon/lat envelope containing every point within
// maxMi of p. The longitude half-width follows the bounding-box
// identity sin(dLon) = sin(r/R) / cos(lat); when the radius reaches a
// pole every longitude is in range.
func searchBox(p model.LatLon, maxMi float64) *rtreego.Rect {
	dLat := maxMi / milesPerDegreeLat * boxPad

	dLon := 360.0
	sinRatio := math.Sin(maxMi/geo.EarthRadiusMi) / math.Cos(p.Lat*math.Pi/180)
	if sinRatio >= 0 && sinRatio < 1 {
		dLon = math.Asin(sinRatio) * 180 / math.Pi * boxPad
	}

	r, err := rtreego.NewRect(
		rtreego.Point{p.Lon - dLon, p.Lat - dLat},
		[]float64{2 * dLon, 2 * dLat},
	)
	if err != nil {
		panic(err)
	}
	return r
}
