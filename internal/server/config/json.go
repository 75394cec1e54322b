package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophfeed/internal/flagx"
	"github.com/dmitrijs2005/gophfeed/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Durations use timex.Duration, which accepts both strings such as "15m" and
// integer nanoseconds. Pointer fields tell an absent key from a zero value.
type JsonConfig struct {
	EndpointAddrGRPC            string          `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	PageSize                    *int            `json:"page_size"`
	S3RootUser                  string          `json:"s3_root_user"`
	S3RootPassword              string          `json:"s3_root_password"`
	S3Bucket                    string          `json:"s3_bucket"`
	S3Region                    string          `json:"s3_region"`
	S3BaseEndpoint              string          `json:"s3_base_endpoint"`
	AvatarURLTTL                *timex.Duration `json:"avatar_url_ttl"`
	LogLevel                    string          `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config into config. Keys missing from the file leave the current value
// untouched. If the file cannot be read or contains invalid JSON, the
// function panics.
func parseJson(config *Config, args []string) {

	jsonConfigFile := flagx.ConfigPath(args)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.PageSize != nil {
		config.PageSize = *c.PageSize
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.AvatarURLTTL != nil {
		config.AvatarURLTTL = c.AvatarURLTTL.Duration
	}
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
