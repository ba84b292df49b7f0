package ingest

type ColumnMode int

const (
	ColumnMode_Single ColumnMode = iota
	ColumnMode_MergedShared
	ColumnMode_MergedPerTab
)

// ColumnMapping is the wizard state deciding which column supplies the
// question text per sheet. The two toggles select one of three modes;
// both are only meaningful when more than one sheet was parsed.
// swagger:model
type ColumnMapping struct {
	MergeTabs        bool              `json:"merge_tabs"`
	SameColumnForAll bool              `json:"same_column_for_all"`
	ActiveSheet      string            `json:"active_sheet,omitempty"`
	Column           string            `json:"column,omitempty"`
	PerTab           map[string]string `json:"per_tab,omitempty"`
}

func (m ColumnMapping) Mode(sheets SheetDatas) ColumnMode {
	if len(sheets) < 2 || !m.MergeTabs {
		return ColumnMode_Single
	}
	if m.SameColumnForAll {
		return ColumnMode_MergedShared
	}
	return ColumnMode_MergedPerTab
}

// activeSheet is the one sheet contributing rows in single mode.
func (m ColumnMapping) activeSheet(sheets SheetDatas) *SheetData {
	if m.ActiveSheet != "" {
		if sheet := sheets.ByName(m.ActiveSheet); sheet != nil {
			return sheet
		}
	}
	if len(sheets) == 0 {
		return nil
	}
	return &sheets[0]
}

// ReferenceSheet is the sheet whose column list describes the project in
// single and merged-shared mode.
func (m ColumnMapping) ReferenceSheet(sheets SheetDatas) *SheetData {
	return m.activeSheet(sheets)
}

// ColumnFor resolves the question column for one sheet. A sheet without a
// resolved column contributes zero rows; that is a normal case in the
// merge modes, not an error.
func (m ColumnMapping) ColumnFor(sheet *SheetData, sheets SheetDatas) (string, bool) {
	switch m.Mode(sheets) {
	case ColumnMode_Single:
		active := m.activeSheet(sheets)
		if active == nil || active.Name != sheet.Name || m.Column == "" {
			return "", false
		}
		return m.Column, true
	case ColumnMode_MergedShared:
		if m.Column == "" {
			return "", false
		}
		return m.Column, true
	default:
		column, ok := m.PerTab[sheet.Name]
		if !ok || column == "" {
			return "", false
		}
		return column, true
	}
}

// Ready reports whether the mapping is complete for the active mode:
// per-tab mode needs a non-empty choice for every sheet, the other modes
// need exactly the one shared column.
func (m ColumnMapping) Ready(sheets SheetDatas) bool {
	if m.Mode(sheets) == ColumnMode_MergedPerTab {
		return m.AllTabsHaveColumns(sheets)
	}
	return m.Column != ""
}

func (m ColumnMapping) AllTabsHaveColumns(sheets SheetDatas) bool {
	if len(sheets) == 0 {
		return false
	}
	for _, sheet := range sheets {
		if m.PerTab[sheet.Name] == "" {
			return false
		}
	}
	return true
}

// SharedColumns is the set of column names present in every sheet,
// ordered by the first sheet's header order. These are the candidates
// offered in merged-shared mode.
func SharedColumns(sheets SheetDatas) []string {
	if len(sheets) == 0 {
		return []string{}
	}

	shared := []string{}
	seen := map[string]bool{}
	for _, column := range sheets[0].Columns {
		if seen[column] {
			continue
		}
		seen[column] = true
		inAll := true
		for _, sheet := range sheets[1:] {
			if columnIndex(&sheet, column) < 0 {
				inAll = false
				break
			}
		}
		if inAll {
			shared = append(shared, column)
		}
	}
	return shared
}

func columnIndex(sheet *SheetData, column string) int {
	for i, name := range sheet.Columns {
		if name == column {
			return i
		}
	}
	return -1
}
