package systembundle

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"rfpcopilot_backend/app/core"
	web3socket "rfpcopilot_backend/app/websocket"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

var WSTickets map[string]string

type SystemController struct {
	core.Controller
	ormDB *gorm.DB
}

func NewSystemController(ormDB *gorm.DB, Users *map[string]core.User) *SystemController {
	WSTickets = make(map[string]string)

	c := &SystemController{
		Controller: core.Controller{Users: Users},
		ormDB:      ormDB,
	}

	go web3socket.HandleUserMessages()
	go web3socket.HandleBroadcastMessages()

	if core.Config.Database.DoAutoMigrate {
		ormDB.AutoMigrate(&core.User{}, &SystemAccountsSession{}, &SystemLog{})
		c.insertDefaultAdmin()
	}

	return c
}

// insertDefaultAdmin seeds the first sysadmin account so a fresh database
// is reachable at all. The password must be changed after the first login.
func (c *SystemController) insertDefaultAdmin() {
	count := 0
	c.ormDB.Model(&core.User{}).Count(&count)
	if count > 0 {
		return
	}

	admin := core.User{
		Username:    "admin",
		DisplayName: "Administrator",
		UserType:    core.UserTypeAdmin,
		Password:    core.GetMD5Hash("admin"),
		IsActive:    true,
		IsSysadmin:  true,
	}
	c.ormDB.Set("gorm:save_associations", false).Create(&admin)
	log.Println("created default admin account, please change its password")
}

func (c *SystemController) isSysadmin(user *core.User) bool {
	return user != nil && user.IsSysadmin
}

// Login checks the credentials and issues a fresh session token
// @Summary Login
// @Tags System
// @Produce json
// @Success 200 {object} core.User
// @Router /system/login [post]
func (c *SystemController) Login(w http.ResponseWriter, r *http.Request) {
	user := core.User{}
	if err := c.GetContent(&user, r); err != nil {
		log.Println(err)
	}

	if len(user.PasswordX) == 0 {
		loginError := make(map[string]string)
		loginError["login"] = "failed"
		c.SendJSON(w, loginError, http.StatusUnauthorized)
		return
	}

	c.ormDB.Where("username=? AND password=?", user.Username, c.GetMD5Hash(user.PasswordX)).First(&user)

	if user.ID == 0 {
		loginError := make(map[string]string)
		loginError["login"] = "failed"
		c.SendJSON(w, loginError, http.StatusUnauthorized)
		return
	} else if !user.IsActive {
		c.HandleErrorWithStatus(errors.New("Account locked"), w, http.StatusUnauthorized)
		return
	}

	accountsSession := SystemAccountsSession{
		AccountId:    user.ID,
		SessionToken: uuid.NewString(),
		LoginTime:    core.NullTime{Time: time.Now(), Valid: true},
	}
	c.ormDB.Set("gorm:save_associations", false).Create(&accountsSession)

	user.Token = accountsSession.SessionToken
	user.PasswordX = ""
	(*c.Controller.Users)[user.Token] = user

	c.SendJSON(w, &user, http.StatusOK)
}

// Logout drops the session of the presented token
// @Summary Logout
// @Tags System
// @Produce json
// @Router /system/logout [post]
func (c *SystemController) Logout(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")

	if len(auth) != len("Bearer 9871b73e-df71-4780-5ed6-b2cbee85f3b5") {
		c.HandleError(errors.New("Not authorized"), w)
		return
	} else {
		tmp := strings.Split(auth, " ")
		if user, ok := (*c.Users)[tmp[1]]; ok {
			c.ormDB.Where("session_token=? AND account_id=?", tmp[1], user.ID).Delete(&SystemAccountsSession{})
			delete(*c.Users, tmp[1])
		}
	}
	c.SendJSON(w, core.User{}, http.StatusOK)
}

// GetUsersHandler lists accounts, sysadmins only
// @Summary List accounts
// @Tags System
// @Produce json
// @Success 200 {array} core.User
// @Router /system/users [get]
func (c *SystemController) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		return
	}
	if !c.isSysadmin(user) {
		c.HandlePermissionError(errors.New("No permission"), w)
		return
	}

	users := core.Users{}
	paging := c.GetPaging(r.URL.Query())

	db := c.ormDB
	if search := r.URL.Query().Get("search"); search != "" {
		db = db.Where("username LIKE ? OR display_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	db.Model(&core.Users{}).Count(&paging.TotalCount)
	db.Limit(paging.Limit).Offset(paging.Offset).Find(&users)

	c.SendJSONPaging(w, paging, &users, http.StatusOK)
}

// SaveUserHandler creates or updates an account, sysadmins only
// @Summary Save an account
// @Tags System
// @Produce json
// @Success 200 {object} core.User
// @Router /system/users [post]
func (c *SystemController) SaveUserHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		return
	}
	if !c.isSysadmin(user) {
		c.HandlePermissionError(errors.New("No permission"), w)
		return
	}

	account := core.User{}
	if err := c.GetContent(&account, r); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}
	if account.Username == "" {
		c.HandleError(errors.New("Please provide a username."), w)
		return
	}

	if c.ormDB.NewRecord(&account) {
		account.CreatedBy = user.ID
		account.RegisteredAt = core.Now()
	}
	if account.PasswordX != "" {
		if err := core.ValidatePassword(account.PasswordX); err != nil {
			c.HandleError(err, w)
			return
		}
		account.Password = core.GetMD5Hash(account.PasswordX)
		account.PasswordX = ""
	}

	c.ormDB.Set("gorm:save_associations", false).Save(&account)
	c.SendJSON(w, &account, http.StatusOK)
}
