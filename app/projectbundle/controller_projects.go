package projectbundle

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"rfpcopilot_backend/app/core"
	"rfpcopilot_backend/app/ingest"
	web3socket "rfpcopilot_backend/app/websocket"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
)

type ProjectController struct {
	core.Controller
	ormDB    *gorm.DB
	sessions *importSessionStore
}

func NewProjectController(ormDB *gorm.DB, users *map[string]core.User) *ProjectController {
	c := &ProjectController{
		Controller: core.Controller{Users: users},
		ormDB:      ormDB,
		sessions:   newImportSessionStore(),
	}

	if core.Config.Database.DoAutoMigrate {
		ormDB.AutoMigrate(&BulkProject{}, &ProjectRow{})
	}

	return c
}

func (c *ProjectController) getImportSession(w http.ResponseWriter, r *http.Request, user *core.User) *ImportSession {
	vars := mux.Vars(r)
	session := c.sessions.Get(vars["ticket"])
	if session == nil || session.UserId != user.ID {
		c.HandleErrorWithStatus(errors.New("Import session not found. Please upload the file again."), w, http.StatusNotFound)
		return nil
	}
	return session
}

// ImportProjectHandler parses an uploaded questionnaire file and opens an
// import session
// @Summary Upload a questionnaire file
// @Tags Projects
// @Accept mpfd
// @Produce json
// @Success 200 {object} projectbundle.ImportUploadResponse
// @Router /projects/import [post]
func (c *ProjectController) ImportProjectHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	filePath, err := c.SaveUploadedFile(r)
	if err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}

	sheets, err := ingest.ParseFile(filePath)
	os.Remove(filePath)
	if err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}

	session := &ImportSession{
		Ticket:    uuid.NewString(),
		UserId:    user.ID,
		FileName:  filepath.Base(filePath),
		Sheets:    sheets,
		CreatedAt: time.Now(),
	}
	c.sessions.Put(session)

	response := ImportUploadResponse{
		Ticket:        session.Ticket,
		FileName:      session.FileName,
		SharedColumns: ingest.SharedColumns(sheets),
	}
	for _, sheet := range sheets {
		response.Sheets = append(response.Sheets, ImportSheetInfo{
			Name:     sheet.Name,
			Columns:  sheet.Columns,
			RowCount: len(sheet.Rows),
		})
	}

	c.SendJSON(w, &response, http.StatusOK)
}

// SetImportMappingHandler stores the column mapping and rebuilds the preview
// @Summary Set the column mapping for an import session
// @Tags Projects
// @Produce json
// @Success 200 {object} projectbundle.ImportPreviewResponse
// @Router /projects/import/{ticket}/mapping [put]
func (c *ProjectController) SetImportMappingHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	session := c.getImportSession(w, r, user)
	if session == nil {
		return
	}

	mapping := ingest.ColumnMapping{}
	if err := c.GetContent(&mapping, r); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}

	// A mapping change always rebuilds the preview, dropping any
	// row-level selection the user made against the old mapping.
	session.mu.Lock()
	defer session.mu.Unlock()
	session.Mapping = mapping
	session.Preview = ingest.MaterializeRows(session.Sheets, mapping)

	c.sendImportPreview(w, session)
}

func (c *ProjectController) sendImportPreview(w http.ResponseWriter, session *ImportSession) {
	response := ImportPreviewResponse{
		Ticket:  session.Ticket,
		Mapping: session.Mapping,
		Ready:   session.Mapping.Ready(session.Sheets),
		Preview: session.Preview,
	}
	c.SendJSON(w, &response, http.StatusOK)
}

// ToggleImportRowHandler flips the selection of one preview row
// @Summary Toggle one preview row
// @Tags Projects
// @Produce json
// @Success 200 {object} projectbundle.ImportPreviewResponse
// @Router /projects/import/{ticket}/rows/toggle [post]
func (c *ProjectController) ToggleImportRowHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	session := c.getImportSession(w, r, user)
	if session == nil {
		return
	}

	request := ToggleRowRequest{}
	if err := c.GetContent(&request, r); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if !ingest.ToggleRow(session.Preview, request.RowNumber, request.SourceTab) {
		c.HandleErrorWithStatus(errors.New("Row not found in the current preview."), w, http.StatusNotFound)
		return
	}

	c.sendImportPreview(w, session)
}

// SelectAllImportRowsHandler selects every preview row
// @Summary Select all preview rows
// @Tags Projects
// @Produce json
// @Success 200 {object} projectbundle.ImportPreviewResponse
// @Router /projects/import/{ticket}/rows/select-all [post]
func (c *ProjectController) SelectAllImportRowsHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	session := c.getImportSession(w, r, user)
	if session == nil {
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	ingest.SelectAll(session.Preview)
	c.sendImportPreview(w, session)
}

// DeselectAllImportRowsHandler deselects every preview row
// @Summary Deselect all preview rows
// @Tags Projects
// @Produce json
// @Success 200 {object} projectbundle.ImportPreviewResponse
// @Router /projects/import/{ticket}/rows/deselect-all [post]
func (c *ProjectController) DeselectAllImportRowsHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	session := c.getImportSession(w, r, user)
	if session == nil {
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	ingest.DeselectAll(session.Preview)
	c.sendImportPreview(w, session)
}

// SubmitImportHandler builds and persists a project from the session.
// The session is only discarded on success so a failed submit can be
// retried without re-uploading.
// @Summary Create a project from an import session
// @Tags Projects
// @Produce json
// @Success 200 {object} projectbundle.BulkProject
// @Router /projects/import/{ticket}/submit [post]
func (c *ProjectController) SubmitImportHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	session := c.getImportSession(w, r, user)
	if session == nil {
		return
	}

	submission := ProjectSubmission{}
	if err := c.GetContent(&submission, r); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	project, err := BuildProject(submission, session.Sheets, session.Mapping, session.Preview)
	if err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}

	if err := c.saveProject(project); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}

	c.sessions.Delete(session.Ticket)

	c.SendJSON(w, project, http.StatusOK)

	go web3socket.SendBroadcastWebsocketDataInfoMessage("Project created", web3socket.Websocket_Add, web3socket.Websocket_Projects, project.Id, project)
}

func (c *ProjectController) saveProject(project *BulkProject) error {
	tx := c.ormDB.Begin()
	if err := tx.Set("gorm:save_associations", false).Create(project).Error; err != nil {
		tx.Rollback()
		return err
	}
	for _, row := range project.Rows {
		if err := tx.Set("gorm:save_associations", false).Create(&row).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

// AbandonImportHandler discards an import session
// @Summary Abandon an import session
// @Tags Projects
// @Produce json
// @Router /projects/import/{ticket} [delete]
func (c *ProjectController) AbandonImportHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	session := c.getImportSession(w, r, user)
	if session == nil {
		return
	}

	c.sessions.Delete(session.Ticket)
	c.SendJSON(w, core.ResponseData{Status: 1, Message: "Import session discarded"}, http.StatusOK)
}

// GetProjectsHandler lists projects with paging and an optional search
// @Summary List projects
// @Tags Projects
// @Produce json
// @Success 200 {array} projectbundle.BulkProject
// @Router /projects [get]
func (c *ProjectController) GetProjectsHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	projects := BulkProjects{}
	paging := c.GetPaging(r.URL.Query())

	db := c.ormDB
	if search := r.URL.Query().Get("search"); search != "" {
		db = db.Where("name LIKE ? OR customer_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if status := r.URL.Query().Get("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	db.Model(&BulkProjects{}).Count(&paging.TotalCount)
	db.Order("created_at DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&projects)

	c.SendJSONPaging(w, paging, &projects, http.StatusOK)
}

// GetProjectHandler returns one project with all its rows
// @Summary Get a project
// @Tags Projects
// @Produce json
// @Success 200 {object} projectbundle.BulkProject
// @Router /projects/{projectId} [get]
func (c *ProjectController) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	vars := mux.Vars(r)
	project := BulkProject{}
	if c.ormDB.Preload("Rows").Where("id = ?", vars["projectId"]).First(&project).RecordNotFound() {
		c.HandleErrorWithStatus(errors.New("Project not found."), w, http.StatusNotFound)
		return
	}

	c.SendJSON(w, &project, http.StatusOK)
}

// DeleteProjectHandler removes a project and its rows
// @Summary Delete a project
// @Tags Projects
// @Produce json
// @Router /projects/{projectId} [delete]
func (c *ProjectController) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	vars := mux.Vars(r)
	project := BulkProject{}
	if c.ormDB.Where("id = ?", vars["projectId"]).First(&project).RecordNotFound() {
		c.HandleErrorWithStatus(errors.New("Project not found."), w, http.StatusNotFound)
		return
	}

	c.ormDB.Where("project_id = ?", project.Id).Delete(&ProjectRow{})
	c.ormDB.Delete(&project)

	c.SendJSON(w, &project, http.StatusOK)

	go web3socket.SendBroadcastWebsocketDataInfoMessage("Project deleted", web3socket.Websocket_Delete, web3socket.Websocket_Projects, project.Id, nil)
}

// UpdateProjectRowHandler records an externally produced answer on a row
// @Summary Update a project row
// @Tags Projects
// @Produce json
// @Success 200 {object} projectbundle.ProjectRow
// @Router /projects/{projectId}/rows/{rowId} [put]
func (c *ProjectController) UpdateProjectRowHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	vars := mux.Vars(r)
	row := ProjectRow{}
	if c.ormDB.Where("id = ? AND project_id = ?", vars["rowId"], vars["projectId"]).First(&row).RecordNotFound() {
		c.HandleErrorWithStatus(errors.New("Project row not found."), w, http.StatusNotFound)
		return
	}

	update := RowUpdate{}
	if err := c.GetContent(&update, r); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}

	switch update.Status {
	case RowStatus_Pending, RowStatus_Answered, RowStatus_Skipped, RowStatus_Error:
	default:
		c.HandleError(errors.New("Unknown row status."), w)
		return
	}

	row.Response = update.Response
	row.Status = update.Status
	row.Confidence = update.Confidence
	row.Sources = update.Sources
	row.Remarks = update.Remarks
	row.UsedSkills = update.UsedSkills
	row.Error = update.Error
	c.ormDB.Set("gorm:save_associations", false).Save(&row)

	c.touchProject(vars["projectId"])

	c.SendJSON(w, &row, http.StatusOK)

	go web3socket.SendBroadcastWebsocketDataInfoMessage("Project row updated", web3socket.Websocket_Update, web3socket.Websocket_ProjectRows, row.Id, &row)
}

// touchProject bumps LastModifiedAt and rolls the project status forward
// based on its row counts.
func (c *ProjectController) touchProject(projectId string) {
	project := BulkProject{}
	if c.ormDB.Where("id = ?", projectId).First(&project).RecordNotFound() {
		return
	}

	openRows := 0
	c.ormDB.Model(&ProjectRow{}).Where("project_id = ? AND status = ?", projectId, RowStatus_Pending).Count(&openRows)

	project.LastModifiedAt = core.Now()
	if openRows == 0 {
		project.Status = ProjectStatus_Completed
	} else {
		project.Status = ProjectStatus_InProgress
	}
	c.ormDB.Set("gorm:save_associations", false).Save(&project)

	go web3socket.SendBroadcastWebsocketDataInfoMessage("Project updated", web3socket.Websocket_Update, web3socket.Websocket_Projects, project.Id, &project)
}
