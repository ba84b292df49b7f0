package projectbundle

import (
	"net/http"
	"rfpcopilot_backend/app/core"

	"github.com/jinzhu/gorm"
)

// ProjectBundle handles questionnaire imports and bulk projects
type ProjectBundle struct {
	routes []core.Route
}

// NewProjectBundle instance
func NewProjectBundle(ormDB *gorm.DB, users *map[string]core.User) core.Bundle {
	pc := NewProjectController(ormDB, users)
	r := []core.Route{
		core.Route{Method: http.MethodPost, Path: "/projects/import", Handler: pc.ImportProjectHandler},
		core.Route{Method: http.MethodPut, Path: "/projects/import/{ticket}/mapping", Handler: pc.SetImportMappingHandler},
		core.Route{Method: http.MethodPost, Path: "/projects/import/{ticket}/rows/toggle", Handler: pc.ToggleImportRowHandler},
		core.Route{Method: http.MethodPost, Path: "/projects/import/{ticket}/rows/select-all", Handler: pc.SelectAllImportRowsHandler},
		core.Route{Method: http.MethodPost, Path: "/projects/import/{ticket}/rows/deselect-all", Handler: pc.DeselectAllImportRowsHandler},
		core.Route{Method: http.MethodPost, Path: "/projects/import/{ticket}/submit", Handler: pc.SubmitImportHandler},
		core.Route{Method: http.MethodDelete, Path: "/projects/import/{ticket}", Handler: pc.AbandonImportHandler},

		core.Route{Method: http.MethodGet, Path: "/projects", Handler: pc.GetProjectsHandler},
		core.Route{Method: http.MethodGet, Path: "/projects/{projectId}", Handler: pc.GetProjectHandler},
		core.Route{Method: http.MethodDelete, Path: "/projects/{projectId}", Handler: pc.DeleteProjectHandler},
		core.Route{Method: http.MethodPut, Path: "/projects/{projectId}/rows/{rowId}", Handler: pc.UpdateProjectRowHandler},

		core.Route{Method: http.MethodGet, Path: "/projects/{projectId}/export/xlsx", Handler: pc.ExportProjectXlsxHandler},
		core.Route{Method: http.MethodGet, Path: "/projects/{projectId}/export/pdf", Handler: pc.ExportProjectPdfHandler},
		core.Route{Method: http.MethodPost, Path: "/projects/{projectId}/report", Handler: pc.SendProjectReportHandler},
	}
	hb := &ProjectBundle{routes: r}
	return hb
}

// GetRoutes returns all bundle routes
func (b *ProjectBundle) GetRoutes() []core.Route {
	return b.routes
}
