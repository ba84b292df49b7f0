package tableconfig

// TableConfig pairs a config type with its effective configuration
type TableConfig struct {
	ConfigType string        `json:"config_type"`
	Config     SCTableConfig `json:"config"`
}
type TableConfigs []TableConfig

type SCTableConfig struct {
	TableHeaders        SCTableHeaders `json:"table_headers"`
	TableHeadersDisplay []string       `json:"table_headers_display"`
	TableActions        SCTableActions `json:"table_actions"`
}
type SCTableConfigs []SCTableConfig

type SCTableAction struct {
	Index string `json:"index,omitempty"`
	Label string `json:"label,omitempty"`
	Icon  string `json:"icon,omitempty"`
}
type SCTableActions []SCTableAction

type SCTableHeader struct {
	Index             string `json:"index,omitempty"`
	Title             string `json:"title,omitempty"`
	DisplayBy         string `json:"display_by,omitempty"`
	ConcatWith        string `json:"concat_with,omitempty"`
	Type              string `json:"type,omitempty"` //'string' | 'number' | 'date' | 'boolean'
	BooleanValues     string `json:"boolean_values,omitempty"`
	SubtitleTitle     string `json:"subtitle_title,omitempty"`
	SubtitleDisplayBy string `json:"subtitle_display_by,omitempty"`
	Sticky            bool   `json:"sticky,omitempty"`
	DateFormat        string `json:"date_format,omitempty"`
	Align             string `json:"align,omitempty"`
	DisableSort       bool   `json:"disable_sort,omitempty"`
}
type SCTableHeaders []SCTableHeader
