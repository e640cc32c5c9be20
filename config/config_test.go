package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "secret")
	os.Setenv("STRIPE_SECRET_KEY", "sk_test")
	os.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "data/jobs4.sqlite", cfg.DBPath)
	assert.NoError(t, cfg.Validate())
}

func TestValidateMissingSecrets(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	err = cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY")
	assert.Contains(t, err.Error(), "STRIPE_WEBHOOK_SECRET")
	assert.NotContains(t, err.Error(), "JWT_SECRET")
}
