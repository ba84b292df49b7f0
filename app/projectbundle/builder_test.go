package projectbundle

import (
	"testing"

	"rfpcopilot_backend/app/ingest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builderSheets() ingest.SheetDatas {
	return ingest.SheetDatas{
		{
			Name:    "Security",
			Columns: []string{"Question", "Answer"},
			Rows:    [][]string{{"Q1", ""}, {"Q2", ""}},
		},
		{
			Name:    "Legal",
			Columns: []string{"Frage", "Answer"},
			Rows:    [][]string{{"Q3", ""}},
		},
	}
}

func TestBuildProject_PreconditionOrder(t *testing.T) {
	sheets := builderSheets()
	submission := ProjectSubmission{Name: "ACME RFP"}

	t.Run("incomplete mapping wins over empty preview", func(t *testing.T) {
		_, err := BuildProject(submission, sheets, ingest.ColumnMapping{}, nil)
		assert.Equal(t, ingest.ErrNoColumnSelected, err)
	})

	t.Run("per tab mode has its own message", func(t *testing.T) {
		mapping := ingest.ColumnMapping{MergeTabs: true, PerTab: map[string]string{"Security": "Question"}}
		_, err := BuildProject(submission, sheets, mapping, nil)
		assert.Equal(t, ingest.ErrTabsWithoutColumn, err)
	})

	t.Run("empty preview", func(t *testing.T) {
		mapping := ingest.ColumnMapping{Column: "Question"}
		_, err := BuildProject(submission, sheets, mapping, ingest.PreviewRows{})
		assert.Equal(t, ingest.ErrNoRowsToPreview, err)
	})

	t.Run("nothing selected", func(t *testing.T) {
		mapping := ingest.ColumnMapping{Column: "Question"}
		preview := ingest.MaterializeRows(sheets, mapping)
		ingest.DeselectAll(preview)
		_, err := BuildProject(submission, sheets, mapping, preview)
		assert.Equal(t, ingest.ErrNoQuestionsSelected, err)
	})
}

func TestBuildProject_SingleMode(t *testing.T) {
	sheets := builderSheets()
	mapping := ingest.ColumnMapping{Column: "Question"}
	preview := ingest.MaterializeRows(sheets, mapping)

	project, err := BuildProject(ProjectSubmission{Name: "ACME RFP", CustomerName: "ACME", OwnerName: "Sam"}, sheets, mapping, preview)
	require.NoError(t, err)

	assert.NotEmpty(t, project.Id)
	assert.Equal(t, "ACME RFP", project.Name)
	assert.Equal(t, "ACME", project.CustomerName)
	assert.Equal(t, "Security", project.SheetName)
	assert.Equal(t, StringList{"Question", "Answer"}, project.Columns)
	assert.Equal(t, ProjectStatus_Draft, project.Status)
	// a single contributing tab leaves the notes empty
	assert.Equal(t, "", project.Notes)
	assert.Equal(t, project.CreatedAt, project.LastModifiedAt)

	require.Len(t, project.Rows, 2)
	ids := map[string]bool{}
	for _, row := range project.Rows {
		assert.NotEmpty(t, row.Id)
		assert.False(t, ids[row.Id])
		ids[row.Id] = true
		assert.Equal(t, project.Id, row.ProjectId)
		assert.Equal(t, RowStatus_Pending, row.Status)
		assert.Equal(t, "", row.Response)
	}
	assert.Equal(t, 2, project.Rows[0].RowNumber)
	assert.Equal(t, "Q1", project.Rows[0].Question)
}

func TestBuildProject_MergedPerTab(t *testing.T) {
	sheets := builderSheets()
	mapping := ingest.ColumnMapping{MergeTabs: true, PerTab: map[string]string{
		"Security": "Question",
		"Legal":    "Frage",
	}}
	preview := ingest.MaterializeRows(sheets, mapping)

	project, err := BuildProject(ProjectSubmission{Name: "Merged"}, sheets, mapping, preview)
	require.NoError(t, err)

	// every parsed tab counts, contributing or not
	assert.Equal(t, "Merged (2 tabs)", project.SheetName)
	assert.Equal(t, StringList{"Question", "Answer", "Frage"}, project.Columns)
	assert.Equal(t, "Security, Legal", project.Notes)
	require.Len(t, project.Rows, 3)
	assert.Equal(t, "Legal", project.Rows[2].SourceTab)
}

func TestBuildProject_NotesOnlyForSelectedTabs(t *testing.T) {
	sheets := builderSheets()
	mapping := ingest.ColumnMapping{MergeTabs: true, PerTab: map[string]string{
		"Security": "Question",
		"Legal":    "Frage",
	}}
	preview := ingest.MaterializeRows(sheets, mapping)

	// deselect the only Legal row; its tab must drop out of the notes
	require.True(t, ingest.ToggleRow(preview, 2, "Legal"))

	project, err := BuildProject(ProjectSubmission{Name: "Merged"}, sheets, mapping, preview)
	require.NoError(t, err)

	assert.Equal(t, "", project.Notes)
	require.Len(t, project.Rows, 2)
}
