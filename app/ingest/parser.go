package ingest

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/tealeg/xlsx"
)

// ParseFile decodes an uploaded spreadsheet into one SheetData per
// populated worksheet. The extension decides the decoder; anything other
// than csv/xls/xlsx is rejected before any bytes are read.
func ParseFile(filePath string) (SheetDatas, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".csv":
		return parseCSVFile(filePath)
	case ".xls":
		return parseLegacyWorkbookFile(filePath)
	case ".xlsx":
		return parseWorkbookFile(filePath)
	default:
		return nil, ErrUnsupportedFileType
	}
}

func parseCSVFile(filePath string) (SheetDatas, error) {
	f, err := os.Open(filePath)
	if err != nil {
		log.Println(err)
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		log.Println(err)
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	sheet := normalizeSheet(name, records)
	if sheet == nil {
		return nil, ErrNoDataRows
	}

	return SheetDatas{*sheet}, nil
}

func parseWorkbookFile(filePath string) (SheetDatas, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		log.Println(err)
		return nil, ErrUnreadableFile
	}

	sheets := SheetDatas{}
	for _, tab := range f.Sheets {
		records := make([][]string, 0, len(tab.Rows))
		for _, row := range tab.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				if cell == nil {
					cells = append(cells, "")
					continue
				}
				cells = append(cells, cell.String())
			}
			records = append(records, cells)
		}
		// tabs without data rows are silently omitted
		if sheet := normalizeSheet(tab.Name, records); sheet != nil {
			sheets = append(sheets, *sheet)
		}
	}

	if len(sheets) == 0 {
		return nil, ErrNoPopulatedWorksheets
	}

	return sheets, nil
}

// parseLegacyWorkbookFile reads BIFF workbooks, which are OLE2 containers
// rather than zip archives. Everything past the raw cell grid is shared
// with the xlsx path.
func parseLegacyWorkbookFile(filePath string) (SheetDatas, error) {
	workbook, err := xls.Open(filePath, "utf-8")
	if err != nil {
		log.Println(err)
		return nil, ErrUnreadableFile
	}

	sheets := SheetDatas{}
	for i := 0; i < workbook.NumSheets(); i++ {
		tab := workbook.GetSheet(i)
		if tab == nil {
			continue
		}
		records := make([][]string, 0, int(tab.MaxRow)+1)
		for rowIdx := 0; rowIdx <= int(tab.MaxRow); rowIdx++ {
			row := tab.Row(rowIdx)
			if row == nil {
				records = append(records, nil)
				continue
			}
			cells := make([]string, 0, row.LastCol())
			for colIdx := 0; colIdx < row.LastCol(); colIdx++ {
				cells = append(cells, row.Col(colIdx))
			}
			records = append(records, cells)
		}
		if sheet := normalizeSheet(tab.Name, records); sheet != nil {
			sheets = append(sheets, *sheet)
		}
	}

	if len(sheets) == 0 {
		return nil, ErrNoPopulatedWorksheets
	}

	return sheets, nil
}

// normalizeSheet drops fully blank rows, takes the first remaining row as
// header (blank header cells become "Column <n>") and returns nil when no
// data rows remain.
func normalizeSheet(name string, records [][]string) *SheetData {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		if isBlankRow(record) {
			continue
		}
		rows = append(rows, record)
	}

	if len(rows) < 2 {
		return nil
	}

	columns := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column %d", i+1)
		}
		columns[i] = header
	}

	return &SheetData{
		Name:    name,
		Columns: columns,
		Rows:    rows[1:],
	}
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
