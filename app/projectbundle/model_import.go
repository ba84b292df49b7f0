package projectbundle

import (
	"sync"
	"time"

	"rfpcopilot_backend/app/ingest"
)

// ImportSession is the server-side state of one upload wizard run. It
// lives only until the session is submitted or abandoned; a new upload
// always starts a fresh session with a fresh ticket.
type ImportSession struct {
	// mu serializes mapping and selection changes on one ticket; the
	// store mutex only guards the session map itself.
	mu sync.Mutex

	Ticket    string               `json:"ticket"`
	UserId    uint                 `json:"-"`
	FileName  string               `json:"file_name"`
	Sheets    ingest.SheetDatas    `json:"sheets"`
	Mapping   ingest.ColumnMapping `json:"mapping"`
	Preview   ingest.PreviewRows   `json:"preview"`
	CreatedAt time.Time            `json:"created_at"`
}

type importSessionStore struct {
	sync.RWMutex
	sessions map[string]*ImportSession
}

func newImportSessionStore() *importSessionStore {
	return &importSessionStore{sessions: make(map[string]*ImportSession)}
}

func (s *importSessionStore) Get(ticket string) *ImportSession {
	s.RLock()
	defer s.RUnlock()
	return s.sessions[ticket]
}

func (s *importSessionStore) Put(session *ImportSession) {
	s.Lock()
	defer s.Unlock()
	s.sessions[session.Ticket] = session
}

func (s *importSessionStore) Delete(ticket string) {
	s.Lock()
	defer s.Unlock()
	delete(s.sessions, ticket)
}

// ImportSheetInfo is the per-tab summary returned right after parsing.
// swagger:model
type ImportSheetInfo struct {
	Name     string   `json:"name"`
	Columns  []string `json:"columns"`
	RowCount int      `json:"row_count"`
}

// ImportUploadResponse is the payload of a successful upload+parse.
// swagger:model
type ImportUploadResponse struct {
	Ticket        string            `json:"ticket"`
	FileName      string            `json:"file_name"`
	Sheets        []ImportSheetInfo `json:"sheets"`
	SharedColumns []string          `json:"shared_columns"`
}

// ImportPreviewResponse is returned whenever the mapping changes.
// swagger:model
type ImportPreviewResponse struct {
	Ticket  string               `json:"ticket"`
	Mapping ingest.ColumnMapping `json:"mapping"`
	Ready   bool                 `json:"ready"`
	Preview ingest.PreviewRows   `json:"preview"`
}

// ToggleRowRequest addresses one preview row; row_number alone is not
// unique across merged tabs.
// swagger:model
type ToggleRowRequest struct {
	RowNumber int    `json:"row_number"`
	SourceTab string `json:"source_tab"`
}
