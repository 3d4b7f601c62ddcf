// Package config handles configuration for the server component,
// including defaults, environment variables, JSON overlay, and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the videotube auth server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - MongoURI / MongoDatabase: document store connection settings.
//   - AccessTokenSecret / RefreshTokenSecret: HMAC secrets for signing JWTs
//     (HS256). The two token kinds are signed with separate secrets.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - SecureCookies: whether auth cookies carry the Secure attribute
//     (disable only for local plain-HTTP development).
type Config struct {
	EndpointAddr                 string
	MongoURI                     string
	MongoDatabase                string
	AccessTokenSecret            string
	RefreshTokenSecret           string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	S3RootUser                   string
	S3RootPassword               string
	S3Bucket                     string
	S3Region                     string
	S3BaseEndpoint               string
	SecureCookies                bool
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.MongoURI = "mongodb://localhost:27017"
	c.MongoDatabase = "videotube"
	c.AccessTokenSecret = "accessSecret"
	c.RefreshTokenSecret = "refreshSecret"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 10 * 24 * time.Hour
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "media"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.SecureCookies = true
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from environment variables, an optional JSON file, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
