package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeRows_SingleMode(t *testing.T) {
	sheets := SheetDatas{
		{
			Name:    "Security",
			Columns: []string{"Question", "Answer", "Category"},
			Rows: [][]string{
				{"  Do you encrypt data at rest?  ", "", "Security"},
				{"How is access managed?"}, // short record
			},
		},
	}

	rows := MaterializeRows(sheets, ColumnMapping{Column: "Question"})
	require.Len(t, rows, 2)

	// first data row sits on spreadsheet line 2
	assert.Equal(t, 2, rows[0].RowNumber)
	assert.Equal(t, 3, rows[1].RowNumber)

	assert.Equal(t, "Do you encrypt data at rest?", rows[0].Question)
	assert.Equal(t, "Security", rows[0].Cells["Category"])

	// missing trailing cells become empty strings, not absent keys
	assert.Equal(t, "", rows[1].Cells["Answer"])
	assert.Equal(t, "", rows[1].Cells["Category"])

	for _, row := range rows {
		assert.True(t, row.Selected)
		assert.Equal(t, "Security", row.SourceTab)
	}
}

func TestMaterializeRows_MergedSharedSkipsSheetsWithoutColumn(t *testing.T) {
	sheets := SheetDatas{
		{Name: "A", Columns: []string{"Question"}, Rows: [][]string{{"QA"}}},
		{Name: "B", Columns: []string{"Frage"}, Rows: [][]string{{"QB"}}},
		{Name: "C", Columns: []string{"Question"}, Rows: [][]string{{"QC"}}},
	}
	mapping := ColumnMapping{MergeTabs: true, SameColumnForAll: true, Column: "Question"}

	rows := MaterializeRows(sheets, mapping)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].SourceTab)
	assert.Equal(t, "C", rows[1].SourceTab)
}

func TestMaterializeRows_PerTabKeepsSheetOrder(t *testing.T) {
	sheets := SheetDatas{
		{Name: "Security", Columns: []string{"Question"}, Rows: [][]string{{"Q1"}, {"Q2"}}},
		{Name: "Legal", Columns: []string{"Frage"}, Rows: [][]string{{"Q1"}}},
	}
	mapping := ColumnMapping{MergeTabs: true, PerTab: map[string]string{
		"Security": "Question",
		"Legal":    "Frage",
	}}

	rows := MaterializeRows(sheets, mapping)
	require.Len(t, rows, 3)

	// identical questions across tabs are not deduplicated
	assert.Equal(t, "Q1", rows[0].Question)
	assert.Equal(t, "Q1", rows[2].Question)
	assert.Equal(t, []string{"Security", "Security", "Legal"}, []string{rows[0].SourceTab, rows[1].SourceTab, rows[2].SourceTab})
}

func TestMaterializeRows_IncompleteMapping(t *testing.T) {
	sheets := SheetDatas{
		{Name: "Security", Columns: []string{"Question"}, Rows: [][]string{{"Q1"}}},
	}
	rows := MaterializeRows(sheets, ColumnMapping{})
	assert.Empty(t, rows)
}
