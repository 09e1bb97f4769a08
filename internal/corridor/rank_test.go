package corridor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

func TestRank_DescendingScore(t *testing.T) {
	corridors := []model.Corridor{
		{Seq: 1, Score: 4_000},
		{Seq: 2, Score: 9_000},
		{Seq: 3, Score: 1_000},
	}

	ranked := Rank(corridors, 100)

	require.Len(t, ranked, 3)
	assert.Equal(t, []int{2, 1, 3}, seqs(ranked))
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, 3, ranked[2].Rank)
}

func TestRank_TiesKeepEnumerationOrder(t *testing.T) {
	corridors := []model.Corridor{
		{Seq: 1, Score: 5_000},
		{Seq: 2, Score: 9_000},
		{Seq: 3, Score: 5_000},
		{Seq: 4, Score: 5_000},
	}

	ranked := Rank(corridors, 100)

	assert.Equal(t, []int{2, 1, 3, 4}, seqs(ranked))
}

func TestRank_TruncatesToTopN(t *testing.T) {
	corridors := []model.Corridor{
		{Seq: 1, Score: 10},
		{Seq: 2, Score: 40},
		{Seq: 3, Score: 20},
		{Seq: 4, Score: 30},
	}

	ranked := Rank(corridors, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, []int{2, 4}, seqs(ranked))
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRank_FewerThanRequestedReturnsAll(t *testing.T) {
	corridors := []model.Corridor{
		{Seq: 1, Score: 10},
		{Seq: 2, Score: 20},
	}

	ranked := Rank(corridors, 100)

	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRank_LeavesInputUntouched(t *testing.T) {
	corridors := []model.Corridor{
		{Seq: 1, Score: 10},
		{Seq: 2, Score: 20},
	}

	Rank(corridors, 1)

	assert.Equal(t, []int{1, 2}, seqs(corridors))
	assert.Zero(t, corridors[0].Rank)
	assert.Zero(t, corridors[1].Rank)
}

func seqs(corridors []model.Corridor) []int {
	out := make([]int, len(corridors))
	for i, c := range corridors {
		out[i] = c.Seq
	}
	return out
}
