package ingest

// ToggleRow flips the selection of the row matching both rowNumber and
// sourceTab. RowNumber alone is not unique once tabs are merged.
func ToggleRow(rows PreviewRows, rowNumber int, sourceTab string) bool {
	for i := range rows {
		if rows[i].RowNumber == rowNumber && rows[i].SourceTab == sourceTab {
			rows[i].Selected = !rows[i].Selected
			return true
		}
	}
	return false
}

func SelectAll(rows PreviewRows) {
	for i := range rows {
		rows[i].Selected = true
	}
}

func DeselectAll(rows PreviewRows) {
	for i := range rows {
		rows[i].Selected = false
	}
}

// SelectedRows returns the selected rows in their original order.
func SelectedRows(rows PreviewRows) PreviewRows {
	selected := PreviewRows{}
	for _, row := range rows {
		if row.Selected {
			selected = append(selected, row)
		}
	}
	return selected
}
