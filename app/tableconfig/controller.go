package tableconfig

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"log"
	"net/http"

	"rfpcopilot_backend/app/core"

	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
)

type TableConfigController struct {
	core.Controller
	ormDB *gorm.DB
}

func NewTableConfigController(ormDB *gorm.DB, users *map[string]core.User) *TableConfigController {

	if core.Config.Database.Debug {
		ormDB = ormDB.Debug()
	}

	c := &TableConfigController{
		Controller: core.Controller{Users: users},
		ormDB:      ormDB,
	}

	if core.Config.Database.DoAutoMigrate {
		c.ormDB.AutoMigrate(&TableConfigUserSetting{})
	}

	return c
}

func (c *TableConfigController) GetDefaultTableConfigsHandler(w http.ResponseWriter, r *http.Request) {
	configs := TableConfigs{}
	for key, tableConfig := range loadedTableConfigs {
		config := TableConfig{
			ConfigType: key,
			Config:     tableConfig,
		}
		configs = append(configs, config)
	}
	c.SendJSON(w, &configs, http.StatusOK)
}

func (c *TableConfigController) GetTableConfigHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		return
	}

	vars := mux.Vars(r)
	configTypeName := vars["configTypeName"]
	if data, err := GetTableConfig(c.ormDB, user, configTypeName); err != nil || data == nil {
		c.HandleError(err, w)
	} else {
		c.SendJSON(w, &data, http.StatusOK)
	}
}

// GetTableConfig merges the user's saved column selection into the default
// configuration of the type.
func GetTableConfig(ormDB *gorm.DB, user *core.User, configTypeName string) (interface{}, error) {
	configTypeName = checkConfigTypeName(configTypeName)
	defaultPath := getTableConfigPath(configTypeName)
	defaultPath += "default.json"
	configStringDefault, err := ioutil.ReadFile(defaultPath)
	if err != nil {
		return nil, errors.New("default config does not exists")
	}

	configDataDefault := SCTableConfig{}
	json.Unmarshal(configStringDefault, &configDataDefault)

	tableConfigUserSetting := TableConfigUserSetting{}
	ormDB.Where("user_id=? AND table_config_type_name=?", user.ID, configTypeName).First(&tableConfigUserSetting)
	if tableConfigUserSetting.ID > 0 {
		tableHeadersDisplayUser := []string{}
		json.Unmarshal([]byte(tableConfigUserSetting.TableHeaderDisplayConfigData), &tableHeadersDisplayUser)
		configDataDefault.TableHeadersDisplay = tableHeadersDisplayUser
	}
	return &configDataDefault, nil
}

func (c *TableConfigController) SaveTableConfig4UserHandler(w http.ResponseWriter, r *http.Request) {
	ok := false
	var user *core.User
	if ok, user = c.GetUser(w, r); !ok {
		return
	}

	vars := mux.Vars(r)
	configTypeName := vars["configTypeName"]
	tableHeadersDisplay := []string{}
	if err := c.GetContent(&tableHeadersDisplay, r); err != nil {
		log.Println(err)
		if c.HandleError(err, w) {
			return
		}
	}
	data, _ := json.Marshal(&tableHeadersDisplay)
	configTypeName = checkConfigTypeName(configTypeName)

	tableConfigUserSetting := TableConfigUserSetting{}
	c.ormDB.Where("user_id=? AND table_config_type_name=?", user.ID, configTypeName).First(&tableConfigUserSetting)
	if tableConfigUserSetting.ID == 0 {
		tableConfigUserSetting.UserId = user.ID
		tableConfigUserSetting.TableConfigTypeName = configTypeName
		tableConfigUserSetting.TableHeaderDisplayConfigData = string(data)
		c.ormDB.Create(&tableConfigUserSetting)
	} else {
		tableConfigUserSetting.TableHeaderDisplayConfigData = string(data)
		c.ormDB.Save(&tableConfigUserSetting)
	}

	c.SendJSON(w, &tableHeadersDisplay, http.StatusOK)
}
