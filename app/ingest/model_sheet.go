package ingest

// SheetData is one parsed worksheet (or the entirety of a CSV file).
// Rows never contains the header row and never contains fully blank rows.
// swagger:model
type SheetData struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type SheetDatas []SheetData

// PreviewRow is one candidate question extracted from a sheet under a
// chosen column mapping. RowNumber is 1-based and counts the header row,
// so the first data row of every sheet is 2.
// swagger:model
type PreviewRow struct {
	RowNumber int               `json:"row_number"`
	Question  string            `json:"question"`
	Cells     map[string]string `json:"cells"`
	Selected  bool              `json:"selected"`
	SourceTab string            `json:"source_tab"`
}

type PreviewRows []PreviewRow

func (s SheetDatas) ByName(name string) *SheetData {
	for i := range s {
		if s[i].Name == name {
			return &s[i]
		}
	}
	return nil
}

func (s SheetDatas) Names() []string {
	names := make([]string, 0, len(s))
	for _, sheet := range s {
		names = append(names, sheet.Name)
	}
	return names
}
