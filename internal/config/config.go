package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultMaxUploadBytes is the largest accepted media file.
const DefaultMaxUploadBytes int64 = 100000000

type Config struct {
	Port           string
	DBPath         string
	PublicDir      string
	UploadDir      string
	MaxUploadBytes int64
	AccessLog      bool

	MediaBackend string
	S3           S3Config
	Sheets       SheetsConfig

	APIURL string
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
	Prefix    string
}

type SheetsConfig struct {
	Enabled        bool
	CredentialPath string
	SpreadsheetID  string
	SheetName      string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("db_path", "data/journal.db")
	v.SetDefault("public_dir", "public")
	v.SetDefault("upload_dir", "public/uploads")
	v.SetDefault("max_upload_bytes", DefaultMaxUploadBytes)
	v.SetDefault("access_log", true)
	v.SetDefault("media_backend", "disk")
	v.SetDefault("s3_prefix", "uploads")
	v.SetDefault("sheets_enabled", false)
	v.SetDefault("sheets_sheet_name", "Logs")
	v.SetDefault("api_url", "http://localhost:3000")
}

// Load reads a .env file if present, then resolves every key from the
// environment (PORT, DB_PATH, ...) falling back to the defaults.
func Load(v *viper.Viper) (*Config, error) {
	_ = godotenv.Load()

	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("port"),
		DBPath:         v.GetString("db_path"),
		PublicDir:      v.GetString("public_dir"),
		UploadDir:      v.GetString("upload_dir"),
		MaxUploadBytes: v.GetInt64("max_upload_bytes"),
		AccessLog:      v.GetBool("access_log"),
		MediaBackend:   strings.ToLower(v.GetString("media_backend")),
		S3: S3Config{
			Bucket:    v.GetString("s3_bucket"),
			Region:    v.GetString("s3_region"),
			Endpoint:  v.GetString("s3_endpoint"),
			PublicURL: v.GetString("s3_public_url"),
			Prefix:    v.GetString("s3_prefix"),
		},
		Sheets: SheetsConfig{
			Enabled:        v.GetBool("sheets_enabled"),
			CredentialPath: v.GetString("sheets_credentials"),
			SpreadsheetID:  v.GetString("sheets_spreadsheet_id"),
			SheetName:      v.GetString("sheets_sheet_name"),
		},
		APIURL: strings.TrimRight(v.GetString("api_url"), "/"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	switch c.MediaBackend {
	case "disk":
	case "s3":
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is not set")
		}
		if c.S3.PublicURL == "" {
			return fmt.Errorf("S3_PUBLIC_URL is not set")
		}
	default:
		return fmt.Errorf("unknown MEDIA_BACKEND %q (want disk or s3)", c.MediaBackend)
	}
	if c.Sheets.Enabled && (c.Sheets.CredentialPath == "" || c.Sheets.SpreadsheetID == "") {
		return fmt.Errorf("SHEETS_CREDENTIALS and SHEETS_SPREADSHEET_ID are required when SHEETS_ENABLED is set")
	}
	return nil
}
