package projectbundle

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rfpcopilot_backend/app/core"
	"rfpcopilot_backend/app/ingest"
)

// BuildProject turns the curated selection into a BulkProject ready for
// persistence. The preconditions are checked in order and each failure
// carries its own user-facing message; nothing is persisted here.
func BuildProject(submission ProjectSubmission, sheets ingest.SheetDatas, mapping ingest.ColumnMapping, preview ingest.PreviewRows) (*BulkProject, error) {

	if !mapping.Ready(sheets) {
		if mapping.Mode(sheets) == ingest.ColumnMode_MergedPerTab {
			return nil, ingest.ErrTabsWithoutColumn
		}
		return nil, ingest.ErrNoColumnSelected
	}

	if len(preview) == 0 {
		return nil, ingest.ErrNoRowsToPreview
	}

	selected := ingest.SelectedRows(preview)
	if len(selected) == 0 {
		return nil, ingest.ErrNoQuestionsSelected
	}

	project := &BulkProject{
		Id:           uuid.NewString(),
		Name:         submission.Name,
		CustomerName: submission.CustomerName,
		OwnerName:    submission.OwnerName,
		Status:       ProjectStatus_Draft,
	}

	mode := mapping.Mode(sheets)
	if mode == ingest.ColumnMode_Single {
		if reference := mapping.ReferenceSheet(sheets); reference != nil {
			project.SheetName = reference.Name
		}
	} else {
		// N counts every parsed tab, not only the contributing ones
		project.SheetName = fmt.Sprintf("Merged (%d tabs)", len(sheets))
	}

	project.Columns = projectColumns(mode, sheets, mapping)

	if notes := sourceTabNotes(selected); notes != "" {
		project.Notes = notes
	}

	now := core.NullTime{Time: time.Now(), Valid: true}
	project.CreatedAt = now
	project.LastModifiedAt = now

	for _, row := range selected {
		project.Rows = append(project.Rows, ProjectRow{
			Id:        uuid.NewString(),
			ProjectId: project.Id,
			RowNumber: row.RowNumber,
			Question:  row.Question,
			Response:  "",
			Status:    RowStatus_Pending,
			SourceTab: row.SourceTab,
		})
	}

	return project, nil
}

func projectColumns(mode ingest.ColumnMode, sheets ingest.SheetDatas, mapping ingest.ColumnMapping) StringList {
	if mode == ingest.ColumnMode_MergedPerTab {
		// deduplicated union over all parsed sheets
		columns := StringList{}
		seen := map[string]bool{}
		for _, sheet := range sheets {
			for _, column := range sheet.Columns {
				if seen[column] {
					continue
				}
				seen[column] = true
				columns = append(columns, column)
			}
		}
		return columns
	}

	reference := mapping.ReferenceSheet(sheets)
	if reference == nil {
		return StringList{}
	}
	return StringList(reference.Columns)
}

// sourceTabNotes lists the distinct tabs represented among the selected
// rows, but only when more than one contributed.
func sourceTabNotes(selected ingest.PreviewRows) string {
	tabs := []string{}
	seen := map[string]bool{}
	for _, row := range selected {
		if seen[row.SourceTab] {
			continue
		}
		seen[row.SourceTab] = true
		tabs = append(tabs, row.SourceTab)
	}
	if len(tabs) < 2 {
		return ""
	}
	return strings.Join(tabs, ", ")
}
