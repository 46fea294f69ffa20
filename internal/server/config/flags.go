package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/accesskeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   database DSN (postgres:// URL or SQLite path)
//	-s string   token HMAC secret key
//	-t int      access token validity, minutes
//	-i          disable role enforcement (testing bypass)
//	-l string   bootstrap admin login
//	-p string   bootstrap admin password
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-i", "-l", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.BoolVar(&config.DisableRoleEnforcement, "i", config.DisableRoleEnforcement, "ignore role checks (testing only)")
	fs.StringVar(&config.AdminLogin, "l", config.AdminLogin, "bootstrap admin login")
	fs.StringVar(&config.AdminPassword, "p", config.AdminPassword, "bootstrap admin password")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
