package librarybundle

import (
	"net/http"
	"rfpcopilot_backend/app/core"

	"github.com/jinzhu/gorm"
)

// LibraryBundle handles the answer library resources
type LibraryBundle struct {
	routes []core.Route
}

// NewLibraryBundle instance
func NewLibraryBundle(ormDB *gorm.DB, users *map[string]core.User) core.Bundle {
	lc := NewLibraryController(ormDB, users)
	r := []core.Route{
		core.Route{Method: http.MethodGet, Path: "/library", Handler: lc.GetLibraryHandler},

		core.Route{Method: http.MethodGet, Path: "/library/skills", Handler: lc.GetSkillsHandler},
		core.Route{Method: http.MethodPost, Path: "/library/skills", Handler: lc.SaveSkillHandler},
		core.Route{Method: http.MethodDelete, Path: "/library/skills/{skillId:[0-9]+}", Handler: lc.DeleteSkillHandler},

		core.Route{Method: http.MethodGet, Path: "/library/documents", Handler: lc.GetDocumentsHandler},
		core.Route{Method: http.MethodPost, Path: "/library/documents", Handler: lc.SaveDocumentHandler},
		core.Route{Method: http.MethodGet, Path: "/library/documents/{documentId:[0-9]+}/download", Handler: lc.DownloadDocumentHandler},
		core.Route{Method: http.MethodDelete, Path: "/library/documents/{documentId:[0-9]+}", Handler: lc.DeleteDocumentHandler},

		core.Route{Method: http.MethodGet, Path: "/library/urls", Handler: lc.GetReferenceUrlsHandler},
		core.Route{Method: http.MethodPost, Path: "/library/urls", Handler: lc.SaveReferenceUrlHandler},
		core.Route{Method: http.MethodDelete, Path: "/library/urls/{urlId:[0-9]+}", Handler: lc.DeleteReferenceUrlHandler},

		core.Route{Method: http.MethodGet, Path: "/library/categories", Handler: lc.GetCategoriesHandler},
		core.Route{Method: http.MethodPost, Path: "/library/categories", Handler: lc.SaveCategoryHandler},
		core.Route{Method: http.MethodDelete, Path: "/library/categories/{categoryId:[0-9]+}", Handler: lc.DeleteCategoryHandler},

		core.Route{Method: http.MethodGet, Path: "/library/owners", Handler: lc.GetOwnersHandler},
		core.Route{Method: http.MethodPost, Path: "/library/owners", Handler: lc.SaveOwnerHandler},
		core.Route{Method: http.MethodDelete, Path: "/library/owners/{ownerId:[0-9]+}", Handler: lc.DeleteOwnerHandler},
	}
	hb := &LibraryBundle{routes: r}
	return hb
}

// GetRoutes returns all bundle routes
func (b *LibraryBundle) GetRoutes() []core.Route {
	return b.routes
}
