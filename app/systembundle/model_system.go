package systembundle

import (
	"rfpcopilot_backend/app/core"
)

type SystemAccountsSession struct {
	core.Model
	AccountId    uint          `json:"-"`
	Account      core.User     `json:"account"`
	SessionToken string        `json:"session_token" gorm:"type:VARCHAR(36);unique_index"`
	LoginTime    core.NullTime `json:"login_time"`
}
type SystemAccountsSessions []SystemAccountsSession

//
//
// swagger:model SystemLog
type SystemLog struct {
	ID       uint          `json:"id" gorm:"primary_key"`
	UserId   uint          `json:"-"`
	User     core.User     `json:"user"`
	LogType  uint          `json:"log_type"`
	LogDate  core.NullTime `json:"log_date"`
	LogTitle string        `json:"log_title"`
	LogText  string        `json:"log_text"`

	Errors map[string]string `json:"-" gorm:"-"`
}

type SystemLogs []SystemLog

func (SystemLog) TableName() string {
	return "system_log"
}
