// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// BcryptCost is the work factor used when hashing passwords.
	BcryptCost int

	// EnforceOwners makes file registration reject a shared_by that does
	// not reference an existing user. Off by default to match the lenient
	// trusted-client behavior.
	EnforceOwners bool

	// AllowedOrigin is the origin permitted by the CORS policy.
	AllowedOrigin string

	// LogLevel sets the zap logging level.
	LogLevel string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.IntVar(&options.BcryptCost, "bcrypt-cost", bcrypt.DefaultCost, "bcrypt work factor for password hashing")
	flag.BoolVar(&options.EnforceOwners, "enforce-owners", false, "reject file advertisements from unknown user ids")
	flag.StringVar(&options.AllowedOrigin, "origin", "*", "origin allowed by CORS")
	flag.StringVar(&options.LogLevel, "log-level", "Info", "logging level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}

	if cost := os.Getenv("BCRYPT_COST"); cost != "" {
		if v, err := strconv.Atoi(cost); err == nil {
			options.BcryptCost = v
		}
	}

	if enforce := os.Getenv("ENFORCE_OWNERS"); enforce != "" {
		if v, err := strconv.ParseBool(enforce); err == nil {
			options.EnforceOwners = v
		}
	}

	if origin := os.Getenv("ALLOWED_ORIGIN"); origin != "" {
		options.AllowedOrigin = origin
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
