package config

type Storage struct {
	// Path of the JSON store file; defaults to the per-user data directory.
	Path string `env:"PATH,expand"`
}
