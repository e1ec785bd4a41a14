package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Prioritization.RegionCeiling)
	assert.Equal(t, 17, cfg.Prioritization.BasinCeiling)
	assert.Equal(t, 0.0, cfg.Prioritization.WeightMin)
	assert.Equal(t, 10.0, cfg.Prioritization.WeightMax)
	assert.Equal(t, 3, cfg.Prioritization.DefaultLimit)
	assert.Equal(t, "37", cfg.Dataset.Jurisdiction)
	assert.Equal(t, "postgres", cfg.Dataset.Driver)
	assert.Equal(t, "huc12_scores_protected_excluded", cfg.Dataset.ExcludedTable)
	assert.Equal(t, 24*time.Hour, cfg.Cache.SessionTTL)
	assert.Equal(t, "scenario-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATASET_DRIVER", "SQLite")
	t.Setenv("PRIORITY_BASIN_CEILING", "5")
	t.Setenv("API_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Dataset.Driver)
	assert.Equal(t, 5, cfg.Prioritization.BasinCeiling)
	assert.Equal(t, ":9090", cfg.GetServerAddr())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Dataset.Driver = "mysql" }, wantErr: true},
		{name: "inverted weight bounds", mutate: func(c *Config) { c.Prioritization.WeightMin = 11 }, wantErr: true},
		{name: "negative ceiling", mutate: func(c *Config) { c.Prioritization.BasinCeiling = -1 }, wantErr: true},
		{name: "wildcard origins", mutate: func(c *Config) { c.Server.CORSOrigins = "*" }},
		{name: "subdomain origin", mutate: func(c *Config) { c.Server.CORSOrigins = "https://*.example.org" }},
		{name: "wildcard mixed into list", mutate: func(c *Config) { c.Server.CORSOrigins = "http://localhost:3000, *" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
