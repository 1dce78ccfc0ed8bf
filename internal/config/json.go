package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/factkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of a config file. Durations use
// timex.Duration so they can be written as "30m" or integer nanoseconds.
// Absent keys leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP           *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC           *string         `json:"endpoint_addr_grpc"`
	StorageBackend             *string         `json:"storage_backend"`
	LocalDSN                   *string         `json:"local_dsn"`
	DatabaseDSN                *string         `json:"database_dsn"`
	KeyPrefix                  *string         `json:"key_prefix"`
	SecretKey                  *string         `json:"secret_key"`
	AdminTokenValidityDuration *timex.Duration `json:"admin_token_validity_duration"`
	LogLevel                   *string         `json:"log_level"`
	S3RootUser                 *string         `json:"s3_root_user"`
	S3RootPassword             *string         `json:"s3_root_password"`
	S3Bucket                   *string         `json:"s3_bucket"`
	S3Region                   *string         `json:"s3_region"`
	S3BaseEndpoint             *string         `json:"s3_base_endpoint"`
}

// parseJson overlays config with the JSON file named by -c or -config.
// Without such a flag nothing is loaded. A missing or malformed file panics,
// since the server cannot start with a config the operator did not intend.
func parseJson(config *Config) {
	path := configFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.LocalDSN, c.LocalDSN)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.KeyPrefix, c.KeyPrefix)
	setString(&config.SecretKey, c.SecretKey)
	if c.AdminTokenValidityDuration != nil {
		config.AdminTokenValidityDuration = c.AdminTokenValidityDuration.Duration
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
