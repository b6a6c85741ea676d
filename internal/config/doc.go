// Package config handles configuration loading for the nova CLI.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// A missing config file is not an error; every setting has a usable default.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from NOVA_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/nova/config.yaml
//  3. ~/.config/nova/config.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	api:
//	  base_url: "${NOVA_API_URL}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Backend connection:
//
//	api:
//	  base_url: "http://localhost:8000"
//	  timeout: "30s"   # Go duration syntax; empty means no timeout
//
// Session storage:
//
//	session:
//	  path: "~/.config/nova/session.json"
//
// Local chat history:
//
//	history:
//	  path: "~/.local/share/nova/history.db"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Environment Overrides
//
// NOVA_API_URL overrides api.base_url whether or not a config file exists.
//
// # Usage
//
//	cfg, err := config.LoadOrDefault("")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
