// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the accesskeeper server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx) or a SQLite path/URI.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Do not use
//     test defaults in prod.
//   - AccessTokenValidityDuration: access token lifetime.
//   - DisableRoleEnforcement: downgrade every authorization denial to a
//     permit. A development/testing bypass, never the default.
//   - AdminLogin / AdminPassword: optional bootstrap credentials; when both
//     are set a brand-new admin account is wired on startup.
type Config struct {
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	DisableRoleEnforcement      bool
	AdminLogin                  string
	AdminPassword               string
}

// LoadDefaults populates Config with development defaults: an in-memory
// SQLite store and an insecure signing key. Override both for production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "file::memory:?cache=shared"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.DisableRoleEnforcement = false
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
