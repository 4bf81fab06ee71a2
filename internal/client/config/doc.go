// Package config loads runtime configuration for the SchoolDesk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   REST API base URL
//	-m string   auth mode: jwt | provider
//	-p string   identity provider address (provider mode)
//	-s string   session store path (SQLite)
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080/api",
//	  "auth_mode": "jwt",
//	  "provider_addr": "127.0.0.1:50051",
//	  "store_path": "schooldesk.db",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
//
// The auth mode is read once at start; switching it needs a restart.
package config
