package ingest

import "strings"

// MaterializeRows expands the resolved column choices into a flat ordered
// slice of PreviewRow: sheets in parse order, rows in sheet order, no
// deduplication across tabs. Sheets without a resolved column (or whose
// header lacks it) are skipped entirely.
func MaterializeRows(sheets SheetDatas, mapping ColumnMapping) PreviewRows {
	rows := PreviewRows{}

	for i := range sheets {
		sheet := &sheets[i]
		column, ok := mapping.ColumnFor(sheet, sheets)
		if !ok {
			continue
		}
		idx := columnIndex(sheet, column)
		if idx < 0 {
			continue
		}

		for rowNr, record := range sheet.Rows {
			cells := make(map[string]string, len(sheet.Columns))
			for colNr, name := range sheet.Columns {
				value := ""
				if colNr < len(record) {
					value = record[colNr]
				}
				cells[name] = value
			}

			question := ""
			if idx < len(record) {
				question = strings.TrimSpace(record[idx])
			}

			rows = append(rows, PreviewRow{
				RowNumber: rowNr + 2, // header row is 1
				Question:  question,
				Cells:     cells,
				Selected:  true,
				SourceTab: sheet.Name,
			})
		}
	}

	return rows
}
