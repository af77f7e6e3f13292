package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_NAME", "talent-match")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("MATCH_WORKERS", "")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "talent-match", cfg.App.AppName)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, "disable", cfg.Database.DBSSLMode)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 500, cfg.Matching.CandidatePoolSize)
	assert.Equal(t, "02/01/2006", cfg.Matching.ExportDateLayout)
	assert.Equal(t, 2, cfg.Gemini.MaxRetries)
	assert.Equal(t, language.Und, cfg.Matching.Locale)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("APP_NAME", "tm")
	v.Set("APP_ENV", "prod")
	v.Set("HTTP_PORT", ":9000")
	v.Set("MATCH_WORKERS", 8)
	v.Set("REDIS_TTL", "30s")
	v.Set("LOG_JSON", true)
	v.Set("MATCH_LOCALE", "sv-SE")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Matching.Workers)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, language.MustParse("sv-SE"), cfg.Matching.Locale)
}

func TestLoad_InvalidLocale(t *testing.T) {
	v := viper.New()
	v.Set("APP_NAME", "tm")
	v.Set("APP_ENV", "test")
	v.Set("HTTP_PORT", "1")
	v.Set("MATCH_LOCALE", "not a locale!")

	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MATCH_LOCALE")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "APP_NAME, APP_ENV, HTTP_PORT")
}

func TestLoad_NegativeWorkers(t *testing.T) {
	v := viper.New()
	v.Set("APP_NAME", "tm")
	v.Set("APP_ENV", "test")
	v.Set("HTTP_PORT", "1")
	v.Set("MATCH_WORKERS", -2)

	_, err := Load(v)
	assert.Error(t, err)
}
