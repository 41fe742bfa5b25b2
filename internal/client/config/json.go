package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/countryexplorer/internal/flagx"
	"github.com/dmitrijs2005/countryexplorer/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell a missing key apart from a zero value.
type JsonConfig struct {
	CatalogBaseURL    *string         `json:"catalog_base_url"`
	DatabasePath      *string         `json:"database_path"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	RequestsPerSecond *float64        `json:"requests_per_second"`
	CredentialScheme  *string         `json:"credential_scheme"`
	LogBackend        *string         `json:"log_backend"`
	LogFormat         *string         `json:"log_format"`
	LogLevel          *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing is loaded. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.CatalogBaseURL, jc.CatalogBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.CredentialScheme, jc.CredentialScheme)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *jc.RequestsPerSecond
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
