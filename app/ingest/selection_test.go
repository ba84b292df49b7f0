package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewFixture() PreviewRows {
	return PreviewRows{
		{RowNumber: 2, Question: "Q1", Selected: true, SourceTab: "Security"},
		{RowNumber: 3, Question: "Q2", Selected: true, SourceTab: "Security"},
		{RowNumber: 2, Question: "Q3", Selected: true, SourceTab: "Legal"},
	}
}

func TestToggleRow(t *testing.T) {
	rows := previewFixture()

	// row number alone is ambiguous across tabs, the pair addresses one row
	assert.True(t, ToggleRow(rows, 2, "Legal"))
	assert.True(t, rows[0].Selected)
	assert.False(t, rows[2].Selected)

	// toggling twice restores the original state
	assert.True(t, ToggleRow(rows, 2, "Legal"))
	assert.True(t, rows[2].Selected)

	assert.False(t, ToggleRow(rows, 99, "Security"))
	assert.False(t, ToggleRow(rows, 2, "Finance"))
}

func TestSelectAllDeselectAll(t *testing.T) {
	rows := previewFixture()

	DeselectAll(rows)
	for _, row := range rows {
		assert.False(t, row.Selected)
	}
	assert.Empty(t, SelectedRows(rows))

	SelectAll(rows)
	for _, row := range rows {
		assert.True(t, row.Selected)
	}
	assert.Len(t, SelectedRows(rows), 3)
}

func TestSelectedRows_KeepsOrder(t *testing.T) {
	rows := previewFixture()
	ToggleRow(rows, 3, "Security")

	selected := SelectedRows(rows)
	require.Len(t, selected, 2)
	assert.Equal(t, "Q1", selected[0].Question)
	assert.Equal(t, "Q3", selected[1].Question)
}
