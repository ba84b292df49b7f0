package core

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Controller handle all base methods
type Controller struct {
	Users *map[string]User
}

const (
	Account_Locked = 1000
)

var Config Configuration

func (c *Controller) SendJSON(w http.ResponseWriter, v interface{}, code int) {
	c.SendJSONPaging(w, nil, v, code)
}

// SendJSONPaging marshals v into the response envelope and sends appropriate headers to w
func (c *Controller) SendJSONPaging(w http.ResponseWriter, paging *Paging, v interface{}, code int) {
	w.Header().Add("Content-Type", "application/json")
	w.Header().Add("Access-Control-Allow-Origin", "*")

	var t1 string = reflect.TypeOf(v).String()
	var t2 string = reflect.TypeOf(ResponseData{}).String()
	var tmp interface{}
	if t1 == t2 || t1 == "*"+t2 {
		tmp = v
	} else {
		tmp = ResponseData{
			Status: 1,
			Data:   v,
			Paging: paging,
		}
	}

	b, err := json.Marshal(tmp)
	if err != nil {
		log.Print(fmt.Sprintf("Error while encoding JSON: %v", err))
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error": "Internal server error"}`)
	} else {
		w.WriteHeader(code)
		io.WriteString(w, string(b))
	}
}

// GetContent of the request inside given struct
func (c *Controller) GetContent(v interface{}, r *http.Request) error {

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	err = json.Unmarshal(body, v)
	if err != nil {
		log.Println(err)
		return err
	}

	return nil
}

// HandleError write error on response and return false if there is no error
//
// swagger:response HandleError
func (c *Controller) HandleError(err error, w http.ResponseWriter) bool {
	if err == nil {
		return false
	}

	msg := ResponseData{
		Status:  999,
		Message: "An error occured",
		Detail:  err.Error(),
	}

	c.SendJSON(w, &msg, http.StatusInternalServerError)
	return true
}

// HandleErrorWithStatus write error on response and return false if there is no error
//
// swagger:response HandleError
func (c *Controller) HandleErrorWithStatus(err error, w http.ResponseWriter, statusCode int) bool {
	if err == nil {
		return false
	}

	msg := ResponseData{
		Status:  999,
		Message: "An error occured",
		Detail:  err.Error(),
	}

	c.SendJSON(w, &msg, statusCode)
	return true
}

// HandlePermissionError write error on response and return false if there is no error
//
// swagger:response HandlePermissionError
func (c *Controller) HandlePermissionError(err error, w http.ResponseWriter) bool {
	if err == nil {
		return false
	}

	msg := ResponseData{
		Status:  998,
		Message: "You are not allowed to access these data",
		Detail:  err.Error(),
	}

	c.SendJSON(w, &msg, http.StatusForbidden)
	return true
}

// HandleUnauthorizedError write error on response and return false if there is no error
//
// swagger:response HandleUnauthorizedError
func (c *Controller) HandleUnauthorizedError(err error, w http.ResponseWriter) bool {
	if err == nil {
		return false
	}

	msg := ResponseData{
		Status:  997,
		Message: "You are not authorized, please login",
		Detail:  err.Error(),
	}

	c.SendJSON(w, &msg, http.StatusUnauthorized)
	return true
}

func (c *Controller) OptionsHandler(w http.ResponseWriter, r *http.Request) {

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Add("Access-Control-Allow-Headers", "Authorization")
	w.Header().Add("Access-Control-Allow-Headers", "Client")
	w.Header().Add("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Add("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")

	w.WriteHeader(http.StatusOK)
}

func (c *Controller) GetUser(w http.ResponseWriter, r *http.Request) (bool, *User) {

	auth := r.Header.Get("Authorization")

	if len(auth) != len("Bearer 9871b73e-df71-4780-5ed6-b2cbee85f3b5") {
		c.HandleUnauthorizedError(errors.New("Not authorized"), w)
		return false, nil
	} else {
		tmp := strings.Split(auth, " ")

		if user, ok := (*c.Users)[tmp[1]]; ok {
			return true, &user
		} else {
			c.HandleUnauthorizedError(errors.New("Session invalid"), w)
			return false, nil
		}
	}
}

func (c *Controller) TryGetUser(w http.ResponseWriter, r *http.Request) (bool, *User) {

	auth := r.Header.Get("Authorization")

	if len(auth) != len("Bearer 9871b73e-df71-4780-5ed6-b2cbee85f3b5") {
		return false, nil
	} else {
		tmp := strings.Split(auth, " ")

		if user, ok := (*c.Users)[tmp[1]]; !ok {
			return false, nil
		} else {
			return true, &user
		}
	}
}

// SaveUploadedFile stores the first uploaded multipart file below a fresh tmp path
// and returns the path of the stored file.
func (c *Controller) SaveUploadedFile(r *http.Request) (string, error) {
	tmpPath := c.GetTmpUploadPath()

	err := r.ParseMultipartForm(32 << 20)
	if err != nil {
		log.Println(err)
		return "", err
	}
	filePath := ""
	for _, fheaders := range r.MultipartForm.File {
		for _, hdr := range fheaders {
			// open uploaded
			var infile multipart.File
			if infile, err = hdr.Open(); nil != err {
				log.Println(err)
				return "", err
			}
			// open destination
			var outfile *os.File
			pos := strings.LastIndex(hdr.Filename, "/")
			filename := hdr.Filename[pos+1:]
			filePath = fmt.Sprintf("%s%s", tmpPath, filename)
			if outfile, err = os.Create(filePath); nil != err {
				log.Println(err)
				return "", err
			}
			var written int64
			if written, err = io.Copy(outfile, infile); nil != err {
				outfile.Close()
				log.Println(err)
				return "", err
			}
			outfile.Close()
			log.Println("uploaded file:" + hdr.Filename + ";length:" + strconv.Itoa(int(written)))
		}
	}

	if filePath == "" {
		return "", errors.New("no file uploaded")
	}

	return filePath, nil
}

func (c *Controller) GetMD5Hash(text string) string {
	return GetMD5Hash(text)
}

func GetMD5Hash(text string) string {
	hasher := md5.New()
	hasher.Write([]byte(text))
	return hex.EncodeToString(hasher.Sum(nil))
}

const letterBytes = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPRSTUVWXYZ123456789"
const (
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

func (c *Controller) RandomString(n int) string {
	return RandomString(n)
}

func RandomString(n int) string {
	b := make([]byte, n)
	// A rand.Int63() generates 63 random bits, enough for letterIdxMax letters!
	for i, cache, remain := n-1, rand.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = rand.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}

	return string(b)
}

func (c *Controller) GetPaging(values url.Values) *Paging {
	paging := Paging{
		Page:   -1,
		Offset: -1,
		Limit:  -1,
	}
	if len(values) > 0 {
		if val, ok := values["page"]; ok && len(val) > 0 {
			if val[0] != "" {
				paging.Page, _ = strconv.Atoi(val[0])
			}
		}
		if val, ok := values["per_page"]; ok && len(val) > 0 {
			if val[0] != "" {
				paging.PerPage, _ = strconv.Atoi(val[0])
			}
		}

		if val, ok := values["limit"]; ok && len(val) > 0 {
			if val[0] != "" {
				paging.Limit, _ = strconv.Atoi(val[0])
			}
		}

		if val, ok := values["offset"]; ok && len(val) > 0 {
			if val[0] != "" {
				paging.Offset, _ = strconv.Atoi(val[0])
			}
		}
	}

	if paging.Limit > 0 || paging.Offset > 0 {
		return &paging
	}
	if paging.Page >= 0 {
		if paging.PerPage > 0 {
			paging.Limit = paging.PerPage
		}

		paging.Offset = paging.Page * paging.PerPage

	} else {
		paging.Page = 0
		paging.PerPage = 200
	}

	return &paging
}

func (c *Controller) SendFile(w http.ResponseWriter, r *http.Request, filepath string) {
	pos := strings.LastIndex(filepath, "/")
	tmp := filepath
	if len(tmp) > pos+1 {
		tmp = filepath[pos+1:]
	}
	c.SendFileWithName(w, r, filepath, tmp)
}

func (c *Controller) SendFileWithName(w http.ResponseWriter, r *http.Request, filepath, filename string) {
	w.Header().Add("Content-Disposition", filename)
	w.Header().Add("Access-Control-Allow-Origin", "*")
	w.Header().Add("Access-Control-Expose-Headers", "Content-Disposition,Access-Control-Allow-Origin,")
	http.ServeFile(w, r, filepath)
}

func (c *Controller) GetTmpUploadPath() string {
	return GetTmpUploadPath()
}

func GetTmpUploadPath() string {
	tmpPath := Config.Server.TmpPath
	if tmpPath == "" {
		tmpPath = "./tmp"
	}
	if !strings.HasSuffix(tmpPath, "/") {
		tmpPath += "/"
	}
	tmpPath += RandomString(10) + "/"
	err := os.MkdirAll(tmpPath, 0700)
	if err != nil {
		log.Println(err)
	}
	return tmpPath
}
