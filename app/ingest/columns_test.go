package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoSheets() SheetDatas {
	return SheetDatas{
		{
			Name:    "Security",
			Columns: []string{"Question", "Answer", "Category"},
			Rows:    [][]string{{"Q1", "", "Security"}},
		},
		{
			Name:    "Legal",
			Columns: []string{"Category", "Question", "Owner"},
			Rows:    [][]string{{"Legal", "Q2", "counsel"}},
		},
	}
}

func TestColumnMapping_Mode(t *testing.T) {
	single := SheetDatas{twoSheets()[0]}
	multi := twoSheets()

	tests := []struct {
		name    string
		sheets  SheetDatas
		mapping ColumnMapping
		want    ColumnMode
	}{
		{"one sheet no toggles", single, ColumnMapping{}, ColumnMode_Single},
		{"one sheet merge toggled", single, ColumnMapping{MergeTabs: true, SameColumnForAll: true}, ColumnMode_Single},
		{"multi no merge", multi, ColumnMapping{}, ColumnMode_Single},
		{"multi merge shared", multi, ColumnMapping{MergeTabs: true, SameColumnForAll: true}, ColumnMode_MergedShared},
		{"multi merge per tab", multi, ColumnMapping{MergeTabs: true}, ColumnMode_MergedPerTab},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mapping.Mode(tt.sheets))
		})
	}
}

func TestSharedColumns(t *testing.T) {
	t.Run("intersection keeps first sheet order", func(t *testing.T) {
		assert.Equal(t, []string{"Question", "Category"}, SharedColumns(twoSheets()))
	})

	t.Run("duplicate headers count once", func(t *testing.T) {
		sheets := SheetDatas{
			{Name: "A", Columns: []string{"Question", "Question", "Notes"}},
			{Name: "B", Columns: []string{"Question"}},
		}
		assert.Equal(t, []string{"Question"}, SharedColumns(sheets))
	})

	t.Run("no sheets", func(t *testing.T) {
		assert.Empty(t, SharedColumns(nil))
	})

	t.Run("disjoint headers", func(t *testing.T) {
		sheets := SheetDatas{
			{Name: "A", Columns: []string{"Question"}},
			{Name: "B", Columns: []string{"Frage"}},
		}
		assert.Empty(t, SharedColumns(sheets))
	})
}

func TestColumnMapping_ColumnFor(t *testing.T) {
	sheets := twoSheets()

	t.Run("single mode only active sheet resolves", func(t *testing.T) {
		mapping := ColumnMapping{ActiveSheet: "Legal", Column: "Question"}
		column, ok := mapping.ColumnFor(&sheets[1], sheets)
		assert.True(t, ok)
		assert.Equal(t, "Question", column)

		_, ok = mapping.ColumnFor(&sheets[0], sheets)
		assert.False(t, ok)
	})

	t.Run("single mode defaults to first sheet", func(t *testing.T) {
		mapping := ColumnMapping{Column: "Question"}
		_, ok := mapping.ColumnFor(&sheets[0], sheets)
		assert.True(t, ok)
	})

	t.Run("merged shared applies to every sheet", func(t *testing.T) {
		mapping := ColumnMapping{MergeTabs: true, SameColumnForAll: true, Column: "Question"}
		for i := range sheets {
			column, ok := mapping.ColumnFor(&sheets[i], sheets)
			assert.True(t, ok)
			assert.Equal(t, "Question", column)
		}
	})

	t.Run("per tab resolves independently", func(t *testing.T) {
		mapping := ColumnMapping{MergeTabs: true, PerTab: map[string]string{"Security": "Question"}}
		_, ok := mapping.ColumnFor(&sheets[0], sheets)
		assert.True(t, ok)
		_, ok = mapping.ColumnFor(&sheets[1], sheets)
		assert.False(t, ok)
	})
}

func TestColumnMapping_Ready(t *testing.T) {
	sheets := twoSheets()

	t.Run("single mode needs the one column", func(t *testing.T) {
		assert.False(t, ColumnMapping{}.Ready(sheets))
		assert.True(t, ColumnMapping{Column: "Question"}.Ready(sheets))
	})

	t.Run("per tab needs every sheet mapped", func(t *testing.T) {
		mapping := ColumnMapping{MergeTabs: true, PerTab: map[string]string{"Security": "Question"}}
		assert.False(t, mapping.Ready(sheets))

		mapping.PerTab["Legal"] = "Question"
		assert.True(t, mapping.Ready(sheets))
	})

	t.Run("per tab with no sheets is never ready", func(t *testing.T) {
		mapping := ColumnMapping{MergeTabs: true}
		assert.False(t, mapping.AllTabsHaveColumns(nil))
	})
}
