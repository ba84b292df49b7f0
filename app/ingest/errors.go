package ingest

import "errors"

// All pipeline failures surface as one user-facing message string,
// so these are plain errors rather than structured codes.
var (
	ErrUnsupportedFileType = errors.New("Unsupported file type. Please upload a .csv, .xls or .xlsx file.")
	ErrUnreadableFile      = errors.New("The file could not be read. Please upload a valid spreadsheet file.")

	ErrNoDataRows            = errors.New("The file contains no data rows.")
	ErrNoPopulatedWorksheets = errors.New("No populated worksheets found in the workbook.")

	ErrNoColumnSelected    = errors.New("Please select a question column.")
	ErrTabsWithoutColumn   = errors.New("Please select a question column for each tab.")
	ErrNoRowsToPreview     = errors.New("No rows to preview. The selected column was not found in any sheet.")
	ErrNoQuestionsSelected = errors.New("No questions selected. Select at least one row before creating a project.")
)
