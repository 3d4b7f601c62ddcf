package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if cfg.EndpointAddr != ":8080" {
		t.Fatalf("unexpected default address: %q", cfg.EndpointAddr)
	}
	if cfg.MongoDatabase != "videotube" {
		t.Fatalf("unexpected default database: %q", cfg.MongoDatabase)
	}
	if cfg.AccessTokenValidityDuration != 15*time.Minute {
		t.Fatalf("unexpected access TTL: %v", cfg.AccessTokenValidityDuration)
	}
	if cfg.RefreshTokenValidityDuration != 10*24*time.Hour {
		t.Fatalf("unexpected refresh TTL: %v", cfg.RefreshTokenValidityDuration)
	}
	if !cfg.SecureCookies {
		t.Fatalf("secure cookies should default to true")
	}
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("ADDRESS", ":9999")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("ACCESS_TOKEN_SECRET", "a-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "r-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "5m")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "48h")
	t.Setenv("SECURE_COOKIES", "false")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	if cfg.EndpointAddr != ":9999" {
		t.Fatalf("address not overridden: %q", cfg.EndpointAddr)
	}
	if cfg.MongoURI != "mongodb://db:27017" || cfg.MongoDatabase != "testdb" {
		t.Fatalf("mongo settings not overridden: %q %q", cfg.MongoURI, cfg.MongoDatabase)
	}
	if cfg.AccessTokenSecret != "a-secret" || cfg.RefreshTokenSecret != "r-secret" {
		t.Fatalf("secrets not overridden")
	}
	if cfg.AccessTokenValidityDuration != 5*time.Minute {
		t.Fatalf("access TTL not overridden: %v", cfg.AccessTokenValidityDuration)
	}
	if cfg.RefreshTokenValidityDuration != 48*time.Hour {
		t.Fatalf("refresh TTL not overridden: %v", cfg.RefreshTokenValidityDuration)
	}
	if cfg.SecureCookies {
		t.Fatalf("secure cookies not overridden")
	}
}

func TestParseEnv_UnsetLeavesDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	if cfg.S3Bucket != "media" {
		t.Fatalf("unset env must keep defaults, got %q", cfg.S3Bucket)
	}
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server", "-a", ":7070", "-n", "flagdb", "-t", "3", "-r", "60"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	if cfg.EndpointAddr != ":7070" {
		t.Fatalf("address flag not applied: %q", cfg.EndpointAddr)
	}
	if cfg.MongoDatabase != "flagdb" {
		t.Fatalf("database flag not applied: %q", cfg.MongoDatabase)
	}
	if cfg.AccessTokenValidityDuration != 3*time.Minute {
		t.Fatalf("access TTL flag not applied: %v", cfg.AccessTokenValidityDuration)
	}
	if cfg.RefreshTokenValidityDuration != 60*time.Minute {
		t.Fatalf("refresh TTL flag not applied: %v", cfg.RefreshTokenValidityDuration)
	}
}

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	content := `{
		"endpoint_addr": ":6060",
		"mongodb_uri": "mongodb://json:27017",
		"db_name": "jsondb",
		"access_token_secret": "ja",
		"refresh_token_secret": "jr",
		"access_token_validity_duration": "10m",
		"refresh_token_validity_duration": "72h",
		"s3_root_user": "u",
		"s3_root_password": "p",
		"s3_bucket": "b",
		"s3_region": "r",
		"s3_base_endpoint": "http://s3:9000/",
		"secure_cookies": true
	}`

	f, err := os.CreateTemp(t.TempDir(), "config*.json")
	if err != nil {
		t.Fatalf("temp file error: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write error: %v", err)
	}
	f.Close()

	os.Args = []string{"server", "-c", f.Name()}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	if cfg.EndpointAddr != ":6060" || cfg.MongoDatabase != "jsondb" {
		t.Fatalf("json overlay not applied: %+v", cfg)
	}
	if cfg.AccessTokenValidityDuration != 10*time.Minute {
		t.Fatalf("json access TTL not applied: %v", cfg.AccessTokenValidityDuration)
	}
	if cfg.RefreshTokenValidityDuration != 72*time.Hour {
		t.Fatalf("json refresh TTL not applied: %v", cfg.RefreshTokenValidityDuration)
	}
}
