package core

// swagger:model
type Configuration struct {
	Database   ConfigurationDatabase   `json:"database"`
	Server     ConfigurationServer     `json:"server"`
	MailServer ConfigurationMailServer `json:"mail_server"`
}

// swagger:model
type ConfigurationDatabase struct {
	Host          string `json:"host"`
	Database      string `json:"database"`
	User          string `json:"user"`
	Password      string `json:"password"`
	Port          int    `json:"port"`
	DoAutoMigrate bool   `json:"do_auto_migrate"`
	DoInsert      bool   `json:"do_insert"`
	Debug         bool   `json:"debug"`
}

// swagger:model
type ConfigurationServer struct {
	Hostname        string `json:"hostname"`
	InternalPort    int    `json:"internal_port"`
	ExternalPort    int    `json:"external_port"`
	WithSSL         bool   `json:"with_ssl"`
	SSLCertFile     string `json:"ssl_cert_file"`
	SSLKeyFile      string `json:"ssl_key_file"`
	UploadFilepath  string `json:"upload_filepath"`
	TmpPath         string `json:"tmp_path"`
	TableConfigPath string `json:"table_config_path"`
	PortalAddress   string `json:"portal_address"`
}

// swagger:model
type ConfigurationMailServer struct {
	SmtpHost     string `json:"smtp_host"`
	SmtpPort     int    `json:"smtp_port"`
	SmtpUsername string `json:"smtp_username"`
	SmtpPassword string `json:"smtp_password"`
	SenderName   string `json:"sender_name"`
}
