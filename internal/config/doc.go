// Package config handles configuration loading for lorekeep.
//
// # Overview
//
// Configuration is loaded once at startup from a YAML file with environment
// variable expansion. The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  secret: "${LOREKEEP_SECRET}"
//
// Syntax: ${VAR_NAME}. Unset variables expand to the empty string.
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "127.0.0.1:8080"
//
// Database:
//
//	database:
//	  driver: "sqlite"   # sqlite, postgres, mysql
//	  dsn: "/var/lib/lorekeep/lorekeep.db"
//
// Authentication:
//
//	auth:
//	  secret: "${LOREKEEP_SECRET}"
//	  token_ttl: "30m"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
package config
