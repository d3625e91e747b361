package config

type Export struct {
	// Directory receiving rendered documents; defaults to the per-user
	// data directory.
	Dir string `env:"DIR,expand"`

	// Open the rendered document with the platform viewer after export
	AutoOpen bool `env:"AUTO_OPEN,expand" envDefault:"true"`
}
