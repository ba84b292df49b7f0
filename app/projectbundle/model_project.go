package projectbundle

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"rfpcopilot_backend/app/core"
)

const (
	ProjectStatus_Draft      = "draft"
	ProjectStatus_InProgress = "in_progress"
	ProjectStatus_Completed  = "completed"
)

const (
	RowStatus_Pending  = "pending"
	RowStatus_Answered = "answered"
	RowStatus_Skipped  = "skipped"
	RowStatus_Error    = "error"
)

// StringList is stored as a JSON text column; header names may contain
// any character, so a joined string would be ambiguous.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	var source []byte
	switch src.(type) {
	case string:
		source = []byte(src.(string))
	case []byte:
		source = src.([]byte)
	case nil:
		*l = nil
		return nil
	default:
		return errors.New("Incompatible type for string list.")
	}
	return json.Unmarshal(source, l)
}

// BulkProject is one questionnaire-processing project, created once from
// the selected preview rows and mutated later by the answering workflow.
// swagger:model
type BulkProject struct {
	Id             string        `json:"id" gorm:"primary_key;type:VARCHAR(36)"`
	Name           string        `json:"name" sctable:"title:Project;isDefaultDisplay"`
	CustomerName   string        `json:"customer_name,omitempty" sctable:"title:Customer;isDefaultDisplay"`
	OwnerName      string        `json:"owner_name,omitempty" sctable:"title:Owner"`
	SheetName      string        `json:"sheet_name" sctable:"title:Sheet;isDefaultDisplay"`
	Columns        StringList    `json:"columns" gorm:"type:TEXT"`
	Status         string        `json:"status" sctable:"title:Status;isDefaultDisplay"`
	Notes          string        `json:"notes,omitempty" gorm:"type:TEXT"`
	CreatedAt      core.NullTime `json:"created_at"`
	LastModifiedAt core.NullTime `json:"last_modified_at"`

	Rows ProjectRows `json:"rows" gorm:"foreignkey:ProjectId"`
}

type BulkProjects []BulkProject

func (BulkProject) TableName() string {
	return "bulk_projects"
}

// ProjectRow is one persisted question. The optional fields stay unset at
// creation and are filled by the answering workflow.
// swagger:model
type ProjectRow struct {
	Id        string `json:"id" gorm:"primary_key;type:VARCHAR(36)"`
	ProjectId string `json:"-" gorm:"type:VARCHAR(36);index"`
	RowNumber int    `json:"row_number"`
	Question  string `json:"question" gorm:"type:TEXT"`
	Response  string `json:"response" gorm:"type:TEXT"`
	Status    string `json:"status"`
	SourceTab string `json:"source_tab"`

	Confidence float64    `json:"confidence,omitempty"`
	Sources    StringList `json:"sources,omitempty" gorm:"type:TEXT"`
	Remarks    string     `json:"remarks,omitempty" gorm:"type:TEXT"`
	UsedSkills StringList `json:"used_skills,omitempty" gorm:"type:TEXT"`
	Error      string     `json:"error,omitempty" gorm:"type:TEXT"`
}

type ProjectRows []ProjectRow

func (ProjectRow) TableName() string {
	return "bulk_project_rows"
}

// ProjectSubmission is the metadata the client sends when committing an
// import session into a project.
// swagger:model
type ProjectSubmission struct {
	Name         string `json:"name"`
	CustomerName string `json:"customer_name,omitempty"`
	OwnerName    string `json:"owner_name,omitempty"`
}

// RowUpdate carries an externally produced answer for one project row.
// swagger:model
type RowUpdate struct {
	Response   string     `json:"response"`
	Status     string     `json:"status"`
	Confidence float64    `json:"confidence,omitempty"`
	Sources    StringList `json:"sources,omitempty"`
	Remarks    string     `json:"remarks,omitempty"`
	UsedSkills StringList `json:"used_skills,omitempty"`
	Error      string     `json:"error,omitempty"`
}
