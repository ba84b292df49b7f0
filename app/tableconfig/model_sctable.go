package tableconfig

import "rfpcopilot_backend/app/core"

// TableConfigUserSetting stores the per-user column selection of one table
type TableConfigUserSetting struct {
	core.Model
	UserId                       uint   `json:"-"`
	TableConfigTypeName          string `json:"table_config_type_name"`
	TableHeaderDisplayConfigData string `json:"table_header_display_config_data" gorm:"type:LONGTEXT"`
}
type TableConfigUserSettings []TableConfigUserSetting
