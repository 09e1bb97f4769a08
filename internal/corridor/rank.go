package corridor

import (
	"sort"

	"go.uber.org/zap"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// Rank orders corridors by descending score, ties broken by ascending
// enumeration sequence, and truncates to the top n. Rank numbers are
// 1-based. Fewer than n qualifying corridors is not an error: all of
// them come back, with the shortfall logged. The input slice is left
// untouched.
func Rank(corridors []model.Corridor, n int) []model.Corridor {
	ranked := make([]model.Corridor, len(corridors))
	copy(ranked, corridors)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Seq < ranked[j].Seq
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	} else if len(ranked) < n {
		zap.L().Info("corridor: fewer qualifying pairs than requested",
			zap.Int("requested", n),
			zap.Int("qualifying", len(ranked)),
		)
	}

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
