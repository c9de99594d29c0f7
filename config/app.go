package config

import "time"

type App struct {
	Port           string        `envconfig:"APP_PORT" default:"8080"`
	DatabaseURL    string        `envconfig:"DATABASE_URL" required:"true"`
	ScrapeInterval time.Duration `envconfig:"SCRAPE_INTERVAL" default:"5m"`
	RetentionDays  int           `envconfig:"RETENTION_DAYS" default:"30"`
	Env            string        `envconfig:"APP_ENV" default:"dev"`
}
