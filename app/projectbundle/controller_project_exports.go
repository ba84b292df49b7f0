package projectbundle

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rfpcopilot_backend/app/core"
	web3socket "rfpcopilot_backend/app/websocket"

	"github.com/gorilla/mux"
	"github.com/jung-kurt/gofpdf"
	tools "github.com/kirillDanshin/nulltime"
	"github.com/tealeg/xlsx"
)

func (c *ProjectController) loadProjectWithRows(w http.ResponseWriter, r *http.Request) *BulkProject {
	vars := mux.Vars(r)
	project := BulkProject{}
	if c.ormDB.Preload("Rows").Where("id = ?", vars["projectId"]).First(&project).RecordNotFound() {
		c.HandleErrorWithStatus(errors.New("Project not found."), w, http.StatusNotFound)
		return nil
	}
	return &project
}

func (c *ProjectController) writeProjectXlsx(project *BulkProject, fileName string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(project.SheetName)
	if err != nil {
		// Tab names from merged workbooks can exceed the xlsx limit
		if sheet, err = file.AddSheet("Questions"); err != nil {
			return err
		}
	}

	header := sheet.AddRow()
	for _, title := range []string{"Row", "Question", "Response", "Status", "Source Tab"} {
		cell := header.AddCell()
		cell.Value = title
	}

	for _, projectRow := range project.Rows {
		row := sheet.AddRow()
		row.AddCell().SetInt(projectRow.RowNumber)
		row.AddCell().Value = projectRow.Question
		row.AddCell().Value = projectRow.Response
		row.AddCell().Value = projectRow.Status
		row.AddCell().Value = projectRow.SourceTab
	}

	return file.Save(fileName)
}

// ExportProjectXlsxHandler downloads the project as a workbook
// @Summary Export a project as xlsx
// @Tags Projects
// @Produce octet-stream
// @Router /projects/{projectId}/export/xlsx [get]
func (c *ProjectController) ExportProjectXlsxHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	project := c.loadProjectWithRows(w, r)
	if project == nil {
		return
	}

	fileName := filepath.Join(c.GetTmpUploadPath(), fmt.Sprintf("project_%s.xlsx", project.Id))
	if err := c.writeProjectXlsx(project, fileName); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}
	defer os.Remove(fileName)

	c.SendFileWithName(w, r, fileName, fmt.Sprintf("%s.xlsx", project.Name))
}

// ExportProjectPdfHandler downloads the project as a PDF report
// @Summary Export a project as PDF
// @Tags Projects
// @Produce octet-stream
// @Router /projects/{projectId}/export/pdf [get]
func (c *ProjectController) ExportProjectPdfHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	project := c.loadProjectWithRows(w, r)
	if project == nil {
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetFooterFuncLpi(func(lastPage bool) {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, project.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Text(10, 15, project.Name)

	y := 25.0
	pdf.SetFont("Arial", "", 12)
	if project.CustomerName != "" {
		pdf.Text(10, y, fmt.Sprintf("Customer: %s", project.CustomerName))
		y += 6
	}
	if project.OwnerName != "" {
		pdf.Text(10, y, fmt.Sprintf("Owner: %s", project.OwnerName))
		y += 6
	}
	pdf.Text(10, y, fmt.Sprintf("Sheet: %s", project.SheetName))
	y += 6
	if project.Notes != "" {
		pdf.Text(10, y, fmt.Sprintf("Source tabs: %s", project.Notes))
		y += 6
	}
	pdf.Text(10, y, fmt.Sprintf("Status: %s", project.Status))

	pdf.SetY(y + 8)
	for _, row := range project.Rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", row.RowNumber, row.Question), "", "L", false)
		pdf.SetFont("Arial", "", 11)
		response := row.Response
		if response == "" {
			response = fmt.Sprintf("(%s)", row.Status)
		}
		pdf.MultiCell(0, 6, response, "", "L", false)
		pdf.Ln(3)
	}

	fileName := filepath.Join(c.GetTmpUploadPath(), fmt.Sprintf("project_%s.pdf", project.Id))
	if err := pdf.OutputFileAndClose(fileName); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}
	defer os.Remove(fileName)

	c.SendFileWithName(w, r, fileName, fmt.Sprintf("%s.pdf", project.Name))
}

// ReportRequest addresses the recipients of a mailed project report.
// swagger:model
type ReportRequest struct {
	Recipients []string `json:"recipients"`
	Message    string   `json:"message,omitempty"`
}

// SendProjectReportHandler mails the project workbook to the given
// recipients
// @Summary Mail a project report
// @Tags Projects
// @Produce json
// @Router /projects/{projectId}/report [post]
func (c *ProjectController) SendProjectReportHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		_ = user
		return
	}

	project := c.loadProjectWithRows(w, r)
	if project == nil {
		return
	}

	request := ReportRequest{}
	if err := c.GetContent(&request, r); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}
	if len(request.Recipients) == 0 {
		c.HandleError(errors.New("Please provide at least one recipient."), w)
		return
	}
	for _, recipient := range request.Recipients {
		if err := core.ValidateFormat(recipient); err != nil {
			c.HandleError(err, w)
			return
		}
	}

	fileName := filepath.Join(c.GetTmpUploadPath(), fmt.Sprintf("project_%s.xlsx", project.Id))
	if err := c.writeProjectXlsx(project, fileName); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}
	defer os.Remove(fileName)

	body := fmt.Sprintf("Please find attached the current state of the questionnaire project %s.", project.Name)
	if request.Message != "" {
		body = request.Message
	}

	subject := fmt.Sprintf("Questionnaire project report: %s", project.Name)
	if err := core.SendMail("", request.Recipients, nil, nil, subject, body, []string{fileName}); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}

	c.SendJSON(w, core.ResponseData{Status: 1, Message: "Report sent"}, http.StatusOK)

	go web3socket.SendWebsocketDataInfoMessage("Report sent", web3socket.Websocket_Update, web3socket.Websocket_Projects, project.Id, []uint{user.ID}, &web3socket.Notification{
		Title:     "Report sent",
		Type:      "REPORT",
		Message:   fmt.Sprintf("The report for %s was mailed to %s.", project.Name, strings.Join(request.Recipients, ", ")),
		Timestamp: tools.NullTime{Time: time.Now(), Valid: true},
	})
}
