package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Mealwise", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, "gpt-4o", cfg.AI.VisionModel)
	assert.Equal(t, 30*time.Minute, cfg.Cache.ShoppingListTTL)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())
	cfg.Database.Driver = "sqlite"
	assert.NoError(t, cfg.Validate())

	cfg.AI.Temperature = 3.5
	assert.Error(t, cfg.Validate())
	cfg.AI.Temperature = 0.3

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}
