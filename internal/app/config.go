package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the application configuration, loadable from environment
// variables (BESTBUY_ prefix), flags, or YAML config files.
type Config struct {
	CatalogFile    string `default:"" usage:"Catalog JSON file, optionally .gz compressed (embedded default catalog when empty)" flag:"catalog-file"`
	AtomicCheckout bool   `default:"false" usage:"Roll back all stock changes when any order line fails" flag:"atomic-checkout"`
	DumpCatalog    bool   `default:"false" usage:"Print the catalog as JSON and exit" flag:"dump-catalog"`
	ServiceName    string `default:"best-buy" usage:"Instrumentation scope name" flag:"service-name"`
}

// LoadConfig loads configuration from environment variables, flags and YAML
// config files.
func LoadConfig() (*Config, error) {
	return loadConfig(aconfig.Config{
		EnvPrefix: "BESTBUY",
		Files:     []string{"config.yaml", "/etc/best-buy/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
}

func loadConfig(ac aconfig.Config) (*Config, error) {
	var cfg Config
	if err := aconfig.LoaderFor(&cfg, ac).Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if cfg.ServiceName == "" {
		return nil, errors.New("service name must not be empty")
	}
	return &cfg, nil
}
