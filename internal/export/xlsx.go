package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// WriteXLSX writes the ranked corridors as an XLSX workbook with a
// single "Corridors" sheet mirroring the CSV table.
func WriteXLSX(path string, corridors []model.Corridor) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Corridors")
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	header := sheet.AddRow()
	for _, col := range rankingColumns {
		header.AddCell().SetString(col)
	}

	for i := range corridors {
		c := &corridors[i]
		row := sheet.AddRow()
		row.AddCell().SetInt(c.Rank)
		row.AddCell().SetString(c.From.ShortName())
		row.AddCell().SetString(c.To.ShortName())
		row.AddCell().SetInt64(c.From.Population)
		row.AddCell().SetInt64(c.To.Population)
		row.AddCell().SetFloat(c.DistanceMi)
		row.AddCell().SetFloat(c.Score)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}
