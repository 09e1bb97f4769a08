package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corridors_top100.xlsx")

	require.NoError(t, WriteXLSX(path, corridorFixture()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	sheet, ok := f.Sheet["Corridors"]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)

	header := sheet.Rows[0]
	require.Len(t, header.Cells, len(rankingColumns))
	assert.Equal(t, "rank", header.Cells[0].String())
	assert.Equal(t, "score", header.Cells[6].String())

	row := sheet.Rows[1]
	assert.Equal(t, "1", row.Cells[0].String())
	assert.Equal(t, "Chicago-Naperville-Elgin", row.Cells[1].String())
	assert.Equal(t, "Detroit-Warren-Dearborn", row.Cells[2].String())

	pop, err := row.Cells[3].Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(9_400_000), pop)

	dist, err := row.Cells[5].Float()
	require.NoError(t, err)
	assert.InDelta(t, 238.3, dist, 1e-9)
}
