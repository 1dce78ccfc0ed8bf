// Package config loads runtime configuration for factctl, the factkeeper
// admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file passed to Load.
//  3. FACTCTL_* environment variables.
//
// Command-line flags are applied afterwards by the cli package.
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "timeout": "10s"
//	}
//
// The admin password is deliberately not read from the JSON file.
package config
