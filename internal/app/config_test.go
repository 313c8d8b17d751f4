package app

import (
	"testing"

	"github.com/cristalhq/aconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLoaderConfig() aconfig.Config {
	return aconfig.Config{
		EnvPrefix: "BESTBUY",
		SkipFlags: true,
		SkipFiles: true,
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(testLoaderConfig())
	require.NoError(t, err)

	assert.Empty(t, cfg.CatalogFile)
	assert.False(t, cfg.AtomicCheckout)
	assert.False(t, cfg.DumpCatalog)
	assert.Equal(t, "best-buy", cfg.ServiceName)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("BESTBUY_CATALOG_FILE", "/srv/catalog.json.gz")
	t.Setenv("BESTBUY_ATOMIC_CHECKOUT", "true")
	t.Setenv("BESTBUY_SERVICE_NAME", "shop")

	cfg, err := loadConfig(testLoaderConfig())
	require.NoError(t, err)

	assert.Equal(t, "/srv/catalog.json.gz", cfg.CatalogFile)
	assert.True(t, cfg.AtomicCheckout)
	assert.Equal(t, "shop", cfg.ServiceName)
}
