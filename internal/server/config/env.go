package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables.
//
// Recognized variables:
//
//	ADDRESS               HTTP bind address
//	MONGODB_URI           document store connection URI
//	DB_NAME               database name
//	ACCESS_TOKEN_SECRET   access token signing secret
//	ACCESS_TOKEN_EXPIRY   access token lifetime (Go duration, e.g. "15m")
//	REFRESH_TOKEN_SECRET  refresh token signing secret
//	REFRESH_TOKEN_EXPIRY  refresh token lifetime (e.g. "240h")
//	S3_ROOT_USER          object storage user
//	S3_ROOT_PASSWORD      object storage password
//	S3_BUCKET             object storage bucket
//	S3_REGION             object storage region
//	S3_BASE_ENDPOINT      object storage endpoint
//	SECURE_COOKIES        "true"/"false"
//
// Unset variables leave the current value untouched; malformed durations
// or booleans panic, matching how the flag and JSON layers fail fast.
func parseEnv(config *Config) {
	setString := func(name string, target *string) {
		if v, ok := os.LookupEnv(name); ok {
			*target = v
		}
	}
	setDuration := func(name string, target *time.Duration) {
		if v, ok := os.LookupEnv(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*target = d
		}
	}

	setString("ADDRESS", &config.EndpointAddr)
	setString("MONGODB_URI", &config.MongoURI)
	setString("DB_NAME", &config.MongoDatabase)
	setString("ACCESS_TOKEN_SECRET", &config.AccessTokenSecret)
	setString("REFRESH_TOKEN_SECRET", &config.RefreshTokenSecret)
	setDuration("ACCESS_TOKEN_EXPIRY", &config.AccessTokenValidityDuration)
	setDuration("REFRESH_TOKEN_EXPIRY", &config.RefreshTokenValidityDuration)
	setString("S3_ROOT_USER", &config.S3RootUser)
	setString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	setString("S3_BUCKET", &config.S3Bucket)
	setString("S3_REGION", &config.S3Region)
	setString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)

	if v, ok := os.LookupEnv("SECURE_COOKIES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		config.SecureCookies = b
	}
}
