package projectbundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"rfpcopilot_backend/app/core"
	"rfpcopilot_backend/app/ingest"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "11111111-2222-3333-4444-555555555555"

func newTestRouter(t *testing.T) (*mux.Router, *ProjectController) {
	t.Helper()
	core.Config.Server.TmpPath = t.TempDir()

	users := map[string]core.User{
		testToken: {Model: core.Model{ID: 7}, Username: "tester", IsActive: true, Token: testToken},
	}
	c := &ProjectController{
		Controller: core.Controller{Users: &users},
		sessions:   newImportSessionStore(),
	}

	r := mux.NewRouter()
	r.HandleFunc("/projects/import", c.ImportProjectHandler).Methods(http.MethodPost)
	r.HandleFunc("/projects/import/{ticket}/mapping", c.SetImportMappingHandler).Methods(http.MethodPut)
	r.HandleFunc("/projects/import/{ticket}/rows/toggle", c.ToggleImportRowHandler).Methods(http.MethodPost)
	r.HandleFunc("/projects/import/{ticket}/rows/select-all", c.SelectAllImportRowsHandler).Methods(http.MethodPost)
	r.HandleFunc("/projects/import/{ticket}/rows/deselect-all", c.DeselectAllImportRowsHandler).Methods(http.MethodPost)
	r.HandleFunc("/projects/import/{ticket}/submit", c.SubmitImportHandler).Methods(http.MethodPost)
	r.HandleFunc("/projects/import/{ticket}", c.AbandonImportHandler).Methods(http.MethodDelete)
	return r, c
}

func doRequest(t *testing.T, r *mux.Router, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+testToken)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func uploadCSV(t *testing.T, r *mux.Router, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return doRequest(t, r, http.MethodPost, "/projects/import", body, writer.FormDataContentType())
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	envelope := struct {
		Status int             `json:"status"`
		Data   json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Status)
	require.NoError(t, json.Unmarshal(envelope.Data, v))
}

func TestImportFlow(t *testing.T) {
	r, c := newTestRouter(t)

	w := uploadCSV(t, r, "questions.csv", "Question,Answer\nQ1,\nQ2,\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	upload := ImportUploadResponse{}
	decodeData(t, w, &upload)
	require.NotEmpty(t, upload.Ticket)
	assert.Equal(t, "questions.csv", upload.FileName)
	require.Len(t, upload.Sheets, 1)
	assert.Equal(t, "questions", upload.Sheets[0].Name)
	assert.Equal(t, 2, upload.Sheets[0].RowCount)
	assert.Equal(t, []string{"Question", "Answer"}, upload.SharedColumns)

	// set the mapping, preview appears
	mapping, _ := json.Marshal(ingest.ColumnMapping{Column: "Question"})
	w = doRequest(t, r, http.MethodPut, "/projects/import/"+upload.Ticket+"/mapping", bytes.NewReader(mapping), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	previewResponse := ImportPreviewResponse{}
	decodeData(t, w, &previewResponse)
	assert.True(t, previewResponse.Ready)
	require.Len(t, previewResponse.Preview, 2)

	// toggle one row off
	toggle, _ := json.Marshal(ToggleRowRequest{RowNumber: 2, SourceTab: "questions"})
	w = doRequest(t, r, http.MethodPost, "/projects/import/"+upload.Ticket+"/rows/toggle", bytes.NewReader(toggle), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &previewResponse)
	assert.False(t, previewResponse.Preview[0].Selected)
	assert.True(t, previewResponse.Preview[1].Selected)

	// a failed submit keeps the session alive
	w = doRequest(t, r, http.MethodPost, "/projects/import/"+upload.Ticket+"/rows/deselect-all", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	submission, _ := json.Marshal(ProjectSubmission{Name: "ACME"})
	w = doRequest(t, r, http.MethodPost, "/projects/import/"+upload.Ticket+"/submit", bytes.NewReader(submission), "application/json")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "No questions selected")
	assert.NotNil(t, c.sessions.Get(upload.Ticket))

	// abandon drops the session
	w = doRequest(t, r, http.MethodDelete, "/projects/import/"+upload.Ticket, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, c.sessions.Get(upload.Ticket))
}

func TestImportFlow_UnsupportedFile(t *testing.T) {
	r, _ := newTestRouter(t)

	w := uploadCSV(t, r, "questions.txt", "Question\nQ1\n")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Unsupported file type")
}

func TestImportFlow_UnknownTicket(t *testing.T) {
	r, _ := newTestRouter(t)

	mapping := strings.NewReader(`{"column":"Question"}`)
	w := doRequest(t, r, http.MethodPut, "/projects/import/none/mapping", mapping, "application/json")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportFlow_ConcurrentToggles(t *testing.T) {
	r, c := newTestRouter(t)

	content := strings.Builder{}
	content.WriteString("Question,Answer\n")
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&content, "Q%d,\n", i)
	}
	w := uploadCSV(t, r, "questions.csv", content.String())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	upload := ImportUploadResponse{}
	decodeData(t, w, &upload)

	mapping, _ := json.Marshal(ingest.ColumnMapping{Column: "Question"})
	w = doRequest(t, r, http.MethodPut, "/projects/import/"+upload.Ticket+"/mapping", bytes.NewReader(mapping), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	// every row starts selected; toggling all 40 rows from 40 parallel
	// requests must leave none selected
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(rowNumber int) {
			defer wg.Done()
			toggle, _ := json.Marshal(ToggleRowRequest{RowNumber: rowNumber, SourceTab: "questions"})
			resp := doRequest(t, r, http.MethodPost, "/projects/import/"+upload.Ticket+"/rows/toggle", bytes.NewReader(toggle), "application/json")
			assert.Equal(t, http.StatusOK, resp.Code)
		}(i + 2)
	}
	wg.Wait()

	session := c.sessions.Get(upload.Ticket)
	require.NotNil(t, session)
	assert.Empty(t, ingest.SelectedRows(session.Preview))
}

func TestImportFlow_MappingChangeResetsSelection(t *testing.T) {
	r, c := newTestRouter(t)

	w := uploadCSV(t, r, "questions.csv", "Question,Answer\nQ1,\n")
	require.Equal(t, http.StatusOK, w.Code)
	upload := ImportUploadResponse{}
	decodeData(t, w, &upload)

	mapping, _ := json.Marshal(ingest.ColumnMapping{Column: "Question"})
	doRequest(t, r, http.MethodPut, "/projects/import/"+upload.Ticket+"/mapping", bytes.NewReader(mapping), "application/json")
	doRequest(t, r, http.MethodPost, "/projects/import/"+upload.Ticket+"/rows/deselect-all", nil, "")

	// re-applying a mapping rebuilds the preview with everything selected
	w = doRequest(t, r, http.MethodPut, "/projects/import/"+upload.Ticket+"/mapping", bytes.NewReader(mapping), "application/json")
	previewResponse := ImportPreviewResponse{}
	decodeData(t, w, &previewResponse)
	require.Len(t, previewResponse.Preview, 1)
	assert.True(t, previewResponse.Preview[0].Selected)

	session := c.sessions.Get(upload.Ticket)
	require.NotNil(t, session)
	assert.True(t, session.Preview[0].Selected)
}
