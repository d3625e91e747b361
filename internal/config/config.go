package config

import (
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/kirsle/configdir"
	"github.com/pkg/errors"
)

type Config struct {
	Logger      Logger      `envPrefix:"LOGGER_"`
	Storage     Storage     `envPrefix:"STORAGE_"`
	OCR         OCR         `envPrefix:"OCR_"`
	Translation Translation `envPrefix:"TRANSLATION_"`
	Export      Export      `envPrefix:"EXPORT_"`
}

func Parse() (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: "EXTRACTOR_",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := fillDefaultPaths(&conf); err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}

// fillDefaultPaths resolves the unset file locations against the per-user
// application directory.
func fillDefaultPaths(conf *Config) error {
	dataDir := configdir.LocalConfig("extractor")

	if conf.Storage.Path == "" {
		conf.Storage.Path = filepath.Join(dataDir, "db", "extractor.json")
	}

	if conf.Export.Dir == "" {
		conf.Export.Dir = filepath.Join(dataDir, "exports")
	}

	return nil
}
