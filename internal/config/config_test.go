package config_test

import (
	"os"
	"testing"

	"github.com/GateBay/nft-marketplace/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestGet_Defaults(t *testing.T) {
	os.Clearenv()

	cfg := config.Get()

	assert.Equal(t, "mainnet", cfg.Network)
	assert.Equal(t, "market", cfg.Index)
	assert.Equal(t, "8080", cfg.ApiPort)
	assert.Equal(t, uint(3), cfg.PlatformFee.Num)
	assert.Equal(t, uint(100), cfg.PlatformFee.Den)
	assert.True(t, cfg.PlatformFee.Valid())
	assert.Equal(t, 30, cfg.TokenContract.Timeout)
	assert.Empty(t, cfg.ElasticSearch.Hosts)
}

func TestGet_FromEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("NETWORK", "testnet")
	os.Setenv("PLATFORM_ACCOUNT", "platform.gatebay")
	os.Setenv("PLATFORM_FEE_NUM", "5")
	os.Setenv("PLATFORM_FEE_DEN", "1000")
	os.Setenv("TOKEN_CONTRACT_ACCOUNT", "tokens.gatebay")
	os.Setenv("ELASTIC_SEARCH_HOSTS", "http://es1:9200,http://es2:9200")
	os.Setenv("DEBUG", "true")

	cfg := config.Get()

	assert.Equal(t, "testnet", cfg.Network)
	assert.Equal(t, "platform.gatebay", cfg.PlatformAccount)
	assert.Equal(t, uint(5), cfg.PlatformFee.Num)
	assert.Equal(t, uint(1000), cfg.PlatformFee.Den)
	assert.Equal(t, "tokens.gatebay", cfg.TokenContract.Account)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ElasticSearch.Hosts)
	assert.True(t, cfg.Debug)
}

func TestGet_InvalidValuesFallBack(t *testing.T) {
	os.Clearenv()
	os.Setenv("PLATFORM_FEE_NUM", "not-a-number")
	os.Setenv("DEBUG", "not-a-bool")

	cfg := config.Get()

	assert.Equal(t, uint(3), cfg.PlatformFee.Num)
	assert.False(t, cfg.Debug)
}
