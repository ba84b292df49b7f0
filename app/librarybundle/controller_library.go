package librarybundle

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"rfpcopilot_backend/app/core"
	web3socket "rfpcopilot_backend/app/websocket"

	"github.com/gorilla/mux"
	"github.com/jinzhu/copier"
	"github.com/jinzhu/gorm"
)

type LibraryController struct {
	core.Controller
	ormDB *gorm.DB
}

func NewLibraryController(ormDB *gorm.DB, users *map[string]core.User) *LibraryController {
	c := &LibraryController{
		Controller: core.Controller{Users: users},
		ormDB:      ormDB,
	}

	if core.Config.Database.DoAutoMigrate {
		ormDB.AutoMigrate(&Category{}, &Owner{}, &Skill{}, &LibraryDocument{}, &ReferenceUrl{})
	}

	return c
}

// GetLibraryHandler returns the unified view over skills, documents and
// reference urls, with optional type and category filters
// @Summary Unified library view
// @Tags Library
// @Produce json
// @Success 200 {array} librarybundle.LibraryItem
// @Router /library [get]
func (c *LibraryController) GetLibraryHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	itemType := r.URL.Query().Get("type")
	categoryId, _ := strconv.ParseInt(r.URL.Query().Get("category_id"), 10, 64)

	db := c.ormDB.Set("gorm:auto_preload", true)
	if categoryId > 0 {
		db = db.Where("category_id = ?", categoryId)
	}

	items := LibraryItems{}

	if itemType == "" || itemType == LibraryItemType_Skill {
		skills := Skills{}
		db.Find(&skills)
		for _, skill := range skills {
			item := LibraryItem{}
			copier.Copy(&item, &skill)
			item.ItemType = LibraryItemType_Skill
			item.Detail = skill.Content
			items = append(items, item)
		}
	}
	if itemType == "" || itemType == LibraryItemType_Document {
		documents := LibraryDocuments{}
		db.Find(&documents)
		for _, document := range documents {
			item := LibraryItem{}
			copier.Copy(&item, &document)
			item.ItemType = LibraryItemType_Document
			item.Detail = document.FileName
			items = append(items, item)
		}
	}
	if itemType == "" || itemType == LibraryItemType_Reference {
		urls := ReferenceUrls{}
		db.Find(&urls)
		for _, referenceUrl := range urls {
			item := LibraryItem{}
			copier.Copy(&item, &referenceUrl)
			item.ItemType = LibraryItemType_Reference
			item.Detail = referenceUrl.Url
			items = append(items, item)
		}
	}

	c.SendJSON(w, &items, http.StatusOK)
}

// GetSkillsHandler lists skills
// @Summary List skills
// @Tags Library
// @Produce json
// @Success 200 {array} librarybundle.Skill
// @Router /library/skills [get]
func (c *LibraryController) GetSkillsHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	skills := Skills{}
	paging := c.GetPaging(r.URL.Query())

	db := c.ormDB
	if search := r.URL.Query().Get("search"); search != "" {
		db = db.Where("title LIKE ? OR content LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	db.Model(&Skills{}).Count(&paging.TotalCount)
	db.Set("gorm:auto_preload", true).Limit(paging.Limit).Offset(paging.Offset).Find(&skills)

	c.SendJSONPaging(w, paging, &skills, http.StatusOK)
}

// SaveSkillHandler creates or updates a skill
// @Summary Save a skill
// @Tags Library
// @Produce json
// @Success 200 {object} librarybundle.Skill
// @Router /library/skills [post]
func (c *LibraryController) SaveSkillHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	skill := Skill{}
	if err := c.GetContent(&skill, r); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}
	if skill.Title == "" {
		c.HandleError(errors.New("Please provide a title."), w)
		return
	}

	c.ormDB.Set("gorm:save_associations", false).Save(&skill)
	c.SendJSON(w, &skill, http.StatusOK)

	go web3socket.SendBroadcastWebsocketDataInfoMessage("Skill saved", web3socket.Websocket_Update, web3socket.Websocket_Library, fmt.Sprintf("%d", skill.ID), &skill)
}

// DeleteSkillHandler removes a skill
// @Summary Delete a skill
// @Tags Library
// @Produce json
// @Router /library/skills/{skillId} [delete]
func (c *LibraryController) DeleteSkillHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	vars := mux.Vars(r)
	skillId, _ := strconv.ParseInt(vars["skillId"], 10, 64)
	skill := Skill{}
	if c.ormDB.First(&skill, skillId).RecordNotFound() {
		c.HandleErrorWithStatus(errors.New("Skill not found."), w, http.StatusNotFound)
		return
	}

	c.ormDB.Delete(&skill)
	c.SendJSON(w, &skill, http.StatusOK)

	go web3socket.SendBroadcastWebsocketDataInfoMessage("Skill deleted", web3socket.Websocket_Delete, web3socket.Websocket_Library, fmt.Sprintf("%d", skill.ID), nil)
}

// GetDocumentsHandler lists library documents
// @Summary List documents
// @Tags Library
// @Produce json
// @Success 200 {array} librarybundle.LibraryDocument
// @Router /library/documents [get]
func (c *LibraryController) GetDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	documents := LibraryDocuments{}
	paging := c.GetPaging(r.URL.Query())

	db := c.ormDB
	if search := r.URL.Query().Get("search"); search != "" {
		db = db.Where("title LIKE ? OR file_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	db.Model(&LibraryDocuments{}).Count(&paging.TotalCount)
	db.Set("gorm:auto_preload", true).Limit(paging.Limit).Offset(paging.Offset).Find(&documents)

	c.SendJSONPaging(w, paging, &documents, http.StatusOK)
}

// SaveDocumentHandler stores an uploaded document under the upload path
// @Summary Upload a document
// @Tags Library
// @Accept mpfd
// @Produce json
// @Success 200 {object} librarybundle.LibraryDocument
// @Router /library/documents [post]
func (c *LibraryController) SaveDocumentHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	tmpFilePath, err := c.SaveUploadedFile(r)
	if err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}

	fileName := filepath.Base(tmpFilePath)
	filePath := fmt.Sprintf("%s%s_%s", core.GetUploadFilepath(), core.RandomString(8), fileName)
	if err := os.Rename(tmpFilePath, filePath); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}

	document := LibraryDocument{
		Title:    r.FormValue("title"),
		FileName: fileName,
		FilePath: filePath,
	}
	if document.Title == "" {
		document.Title = fileName
	}
	if categoryId, err := strconv.ParseUint(r.FormValue("category_id"), 10, 64); err == nil {
		document.CategoryId = uint(categoryId)
	}
	if ownerId, err := strconv.ParseUint(r.FormValue("owner_id"), 10, 64); err == nil {
		document.OwnerId = uint(ownerId)
	}

	c.ormDB.Set("gorm:save_associations", false).Save(&document)
	c.SendJSON(w, &document, http.StatusOK)

	go web3socket.SendBroadcastWebsocketDataInfoMessage("Document saved", web3socket.Websocket_Add, web3socket.Websocket_Library, fmt.Sprintf("%d", document.ID), &document)
}

// DownloadDocumentHandler sends the stored file
// @Summary Download a document
// @Tags Library
// @Produce octet-stream
// @Router /library/documents/{documentId}/download [get]
func (c *LibraryController) DownloadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	vars := mux.Vars(r)
	documentId, _ := strconv.ParseInt(vars["documentId"], 10, 64)
	document := LibraryDocument{}
	if c.ormDB.First(&document, documentId).RecordNotFound() {
		c.HandleErrorWithStatus(errors.New("Document not found."), w, http.StatusNotFound)
		return
	}

	c.SendFileWithName(w, r, document.FilePath, document.FileName)
}

// DeleteDocumentHandler removes a document and its stored file
// @Summary Delete a document
// @Tags Library
// @Produce json
// @Router /library/documents/{documentId} [delete]
func (c *LibraryController) DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	vars := mux.Vars(r)
	documentId, _ := strconv.ParseInt(vars["documentId"], 10, 64)
	document := LibraryDocument{}
	if c.ormDB.First(&document, documentId).RecordNotFound() {
		c.HandleErrorWithStatus(errors.New("Document not found."), w, http.StatusNotFound)
		return
	}

	if document.FilePath != "" {
		os.Remove(document.FilePath)
	}
	c.ormDB.Delete(&document)
	c.SendJSON(w, &document, http.StatusOK)

	go web3socket.SendBroadcastWebsocketDataInfoMessage("Document deleted", web3socket.Websocket_Delete, web3socket.Websocket_Library, fmt.Sprintf("%d", document.ID), nil)
}

// GetReferenceUrlsHandler lists reference urls
// @Summary List reference urls
// @Tags Library
// @Produce json
// @Success 200 {array} librarybundle.ReferenceUrl
// @Router /library/urls [get]
func (c *LibraryController) GetReferenceUrlsHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	urls := ReferenceUrls{}
	paging := c.GetPaging(r.URL.Query())

	db := c.ormDB
	if search := r.URL.Query().Get("search"); search != "" {
		db = db.Where("title LIKE ? OR url LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	db.Model(&ReferenceUrls{}).Count(&paging.TotalCount)
	db.Set("gorm:auto_preload", true).Limit(paging.Limit).Offset(paging.Offset).Find(&urls)

	c.SendJSONPaging(w, paging, &urls, http.StatusOK)
}

// SaveReferenceUrlHandler creates or updates a reference url
// @Summary Save a reference url
// @Tags Library
// @Produce json
// @Success 200 {object} librarybundle.ReferenceUrl
// @Router /library/urls [post]
func (c *LibraryController) SaveReferenceUrlHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	referenceUrl := ReferenceUrl{}
	if err := c.GetContent(&referenceUrl, r); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}
	if referenceUrl.Url == "" {
		c.HandleError(errors.New("Please provide a url."), w)
		return
	}

	c.ormDB.Set("gorm:save_associations", false).Save(&referenceUrl)
	c.SendJSON(w, &referenceUrl, http.StatusOK)

	go web3socket.SendBroadcastWebsocketDataInfoMessage("Reference url saved", web3socket.Websocket_Update, web3socket.Websocket_Library, fmt.Sprintf("%d", referenceUrl.ID), &referenceUrl)
}

// DeleteReferenceUrlHandler removes a reference url
// @Summary Delete a reference url
// @Tags Library
// @Produce json
// @Router /library/urls/{urlId} [delete]
func (c *LibraryController) DeleteReferenceUrlHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	vars := mux.Vars(r)
	urlId, _ := strconv.ParseInt(vars["urlId"], 10, 64)
	referenceUrl := ReferenceUrl{}
	if c.ormDB.First(&referenceUrl, urlId).RecordNotFound() {
		c.HandleErrorWithStatus(errors.New("Reference url not found."), w, http.StatusNotFound)
		return
	}

	c.ormDB.Delete(&referenceUrl)
	c.SendJSON(w, &referenceUrl, http.StatusOK)

	go web3socket.SendBroadcastWebsocketDataInfoMessage("Reference url deleted", web3socket.Websocket_Delete, web3socket.Websocket_Library, fmt.Sprintf("%d", referenceUrl.ID), nil)
}

// GetCategoriesHandler lists categories
// @Summary List categories
// @Tags Library
// @Produce json
// @Success 200 {array} librarybundle.Category
// @Router /library/categories [get]
func (c *LibraryController) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	categories := Categories{}
	c.ormDB.Order("name ASC").Find(&categories)
	c.SendJSON(w, &categories, http.StatusOK)
}

// SaveCategoryHandler creates or updates a category
// @Summary Save a category
// @Tags Library
// @Produce json
// @Success 200 {object} librarybundle.Category
// @Router /library/categories [post]
func (c *LibraryController) SaveCategoryHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	category := Category{}
	if err := c.GetContent(&category, r); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}
	if category.Name == "" {
		c.HandleError(errors.New("Please provide a name."), w)
		return
	}

	c.ormDB.Save(&category)
	c.SendJSON(w, &category, http.StatusOK)
}

// DeleteCategoryHandler removes a category
// @Summary Delete a category
// @Tags Library
// @Produce json
// @Router /library/categories/{categoryId} [delete]
func (c *LibraryController) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	vars := mux.Vars(r)
	categoryId, _ := strconv.ParseInt(vars["categoryId"], 10, 64)
	category := Category{}
	if c.ormDB.First(&category, categoryId).RecordNotFound() {
		c.HandleErrorWithStatus(errors.New("Category not found."), w, http.StatusNotFound)
		return
	}

	c.ormDB.Delete(&category)
	c.SendJSON(w, &category, http.StatusOK)
}

// GetOwnersHandler lists owners
// @Summary List owners
// @Tags Library
// @Produce json
// @Success 200 {array} librarybundle.Owner
// @Router /library/owners [get]
func (c *LibraryController) GetOwnersHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	owners := Owners{}
	c.ormDB.Order("name ASC").Find(&owners)
	c.SendJSON(w, &owners, http.StatusOK)
}

// SaveOwnerHandler creates or updates an owner
// @Summary Save an owner
// @Tags Library
// @Produce json
// @Success 200 {object} librarybundle.Owner
// @Router /library/owners [post]
func (c *LibraryController) SaveOwnerHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	owner := Owner{}
	if err := c.GetContent(&owner, r); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}
	if owner.Email != "" {
		if err := core.ValidateFormat(owner.Email); err != nil {
			c.HandleError(err, w)
			return
		}
	}

	c.ormDB.Save(&owner)
	c.SendJSON(w, &owner, http.StatusOK)
}

// DeleteOwnerHandler removes an owner
// @Summary Delete an owner
// @Tags Library
// @Produce json
// @Router /library/owners/{ownerId} [delete]
func (c *LibraryController) DeleteOwnerHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	vars := mux.Vars(r)
	ownerId, _ := strconv.ParseInt(vars["ownerId"], 10, 64)
	owner := Owner{}
	if c.ormDB.First(&owner, ownerId).RecordNotFound() {
		c.HandleErrorWithStatus(errors.New("Owner not found."), w, http.StatusNotFound)
		return
	}

	c.ormDB.Delete(&owner)
	c.SendJSON(w, &owner, http.StatusOK)
}
