package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeWorkbook(t *testing.T, name string, tabs map[string][][]string) string {
	t.Helper()
	file := xlsx.NewFile()
	for tabName, records := range tabs {
		sheet, err := file.AddSheet(tabName)
		require.NoError(t, err)
		for _, record := range records {
			row := sheet.AddRow()
			for _, value := range record {
				row.AddCell().Value = value
			}
		}
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, file.Save(path))
	return path
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	_, err := ParseFile("questionnaire.txt")
	assert.Equal(t, ErrUnsupportedFileType, err)

	_, err = ParseFile("questionnaire")
	assert.Equal(t, ErrUnsupportedFileType, err)
}

func TestParseFile_LegacyWorkbookUnreadable(t *testing.T) {
	// an OLE2 magic number with no workbook stream behind it
	path := filepath.Join(t.TempDir(), "legacy.xls")
	require.NoError(t, os.WriteFile(path, []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}, 0644))

	sheets, err := ParseFile(path)
	assert.Nil(t, sheets)
	assert.Equal(t, ErrUnreadableFile, err)
}

func TestParseFile_CorruptWorkbook(t *testing.T) {
	path := writeCSV(t, "questions.xlsx", "Question\nQ1\n")

	sheets, err := ParseFile(path)
	assert.Nil(t, sheets)
	assert.Equal(t, ErrUnreadableFile, err)
}

func TestParseFile_CSV(t *testing.T) {
	path := writeCSV(t, "security questionnaire.csv", "Question,Answer,Category\nDo you encrypt data at rest?,,Security\n\nHow is access managed?,,IAM\n")

	sheets, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	sheet := sheets[0]
	assert.Equal(t, "security questionnaire", sheet.Name)
	assert.Equal(t, []string{"Question", "Answer", "Category"}, sheet.Columns)
	// the blank line between the two data rows is dropped
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Do you encrypt data at rest?", sheet.Rows[0][0])
	assert.Equal(t, "How is access managed?", sheet.Rows[1][0])
}

func TestParseFile_CSVBlankHeadersSynthesized(t *testing.T) {
	path := writeCSV(t, "rfp.csv", ",Question,  \nignored,What is your SLA?,extra\n")

	sheets, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, []string{"Column 1", "Question", "Column 3"}, sheets[0].Columns)
}

func TestParseFile_CSVNoDataRows(t *testing.T) {
	t.Run("header only", func(t *testing.T) {
		path := writeCSV(t, "empty.csv", "Question,Answer\n")
		_, err := ParseFile(path)
		assert.Equal(t, ErrNoDataRows, err)
	})

	t.Run("blank rows only", func(t *testing.T) {
		path := writeCSV(t, "blank.csv", "\n , \n\n")
		_, err := ParseFile(path)
		assert.Equal(t, ErrNoDataRows, err)
	})
}

func TestParseFile_Workbook(t *testing.T) {
	path := writeWorkbook(t, "vendor.xlsx", map[string][][]string{
		"Security": {
			{"Question", "Notes"},
			{"Do you have a SOC 2 report?", "yes"},
		},
		"Empty": {},
		"HeaderOnly": {
			{"Question", "Notes"},
		},
	})

	sheets, err := ParseFile(path)
	require.NoError(t, err)
	// empty and header-only tabs are silently dropped
	require.Len(t, sheets, 1)
	assert.Equal(t, "Security", sheets[0].Name)
	assert.Equal(t, []string{"Question", "Notes"}, sheets[0].Columns)
	require.Len(t, sheets[0].Rows, 1)
}

func TestParseFile_WorkbookAllTabsEmpty(t *testing.T) {
	path := writeWorkbook(t, "empty.xlsx", map[string][][]string{
		"One": {},
		"Two": {{"Question"}},
	})

	_, err := ParseFile(path)
	assert.Equal(t, ErrNoPopulatedWorksheets, err)
}
