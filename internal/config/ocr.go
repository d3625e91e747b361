package config

type OCR struct {
	Lang string `env:"LANG,expand" envDefault:"eng"`
}
