package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/accesskeeper/internal/flagx"
)

// JsonConfig is the DTO for the optional JSON configuration file. Durations
// are given as strings understood by time.ParseDuration ("30m", "1h").
type JsonConfig struct {
	EndpointAddrGRPC            string `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string `json:"database_dsn"`
	SecretKey                   string `json:"secret_key"`
	AccessTokenValidityDuration string `json:"access_token_validity_duration"`
	DisableRoleEnforcement      bool   `json:"disable_role_enforcement"`
	AdminLogin                  string `json:"admin_login"`
	AdminPassword               string `json:"admin_password"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no file is loaded. An unreadable or invalid
// file panics: a deployment pointing at a broken config must not start.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration != "" {
		d, err := time.ParseDuration(c.AccessTokenValidityDuration)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}
	config.DisableRoleEnforcement = c.DisableRoleEnforcement
	if c.AdminLogin != "" {
		config.AdminLogin = c.AdminLogin
	}
	if c.AdminPassword != "" {
		config.AdminPassword = c.AdminPassword
	}
}
