package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/sharebox/internal/flagx"
	"github.com/dmitrijs2005/sharebox/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Empty fields leave
// the current value alone.
type FileConfig struct {
	HTTPAddr         string         `json:"http_addr" yaml:"http_addr"`
	LogLevel         string         `json:"log_level" yaml:"log_level"`
	AdminEmail       string         `json:"admin_email" yaml:"admin_email"`
	AdminPassword    string         `json:"admin_password" yaml:"admin_password"`
	SessionSecret    string         `json:"session_secret" yaml:"session_secret"`
	SessionTTL       timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	MaxUploadBytes   int64          `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	RecordStore      string         `json:"record_store" yaml:"record_store"`
	DatabaseDSN      string         `json:"database_dsn" yaml:"database_dsn"`
	DynamoDBEndpoint string         `json:"dynamodb_endpoint" yaml:"dynamodb_endpoint"`
	DynamoUsersTable string         `json:"dynamodb_users_table" yaml:"dynamodb_users_table"`
	DynamoFilesTable string         `json:"dynamodb_files_table" yaml:"dynamodb_files_table"`
	BlobStore        string         `json:"blob_store" yaml:"blob_store"`
	S3AccessKey      string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	S3Bucket         string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region         string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	PublicBaseURL    string         `json:"public_base_url" yaml:"public_base_url"`
}

// parseFile loads the file named by -c/-config, if any. YAML is used for
// .yaml/.yml files and JSON otherwise. An unreadable or invalid file panics:
// a server started with a broken config must not come up half-configured.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func (fc *FileConfig) apply(c *Config) {
	setString(&c.HTTPAddr, fc.HTTPAddr)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.AdminEmail, fc.AdminEmail)
	setString(&c.AdminPassword, fc.AdminPassword)
	setString(&c.SessionSecret, fc.SessionSecret)
	if fc.SessionTTL.Duration > 0 {
		c.SessionTTL = fc.SessionTTL.Duration
	}
	if fc.MaxUploadBytes > 0 {
		c.MaxUploadBytes = fc.MaxUploadBytes
	}
	setString(&c.RecordStore, fc.RecordStore)
	setString(&c.DatabaseDSN, fc.DatabaseDSN)
	setString(&c.DynamoDBEndpoint, fc.DynamoDBEndpoint)
	setString(&c.DynamoUsersTable, fc.DynamoUsersTable)
	setString(&c.DynamoFilesTable, fc.DynamoFilesTable)
	setString(&c.BlobStore, fc.BlobStore)
	setString(&c.S3AccessKey, fc.S3AccessKey)
	setString(&c.S3SecretKey, fc.S3SecretKey)
	setString(&c.S3Bucket, fc.S3Bucket)
	setString(&c.S3Region, fc.S3Region)
	setString(&c.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&c.PublicBaseURL, fc.PublicBaseURL)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
