package cmd

import "time"

// Config carries the runtime settings of the fulfillment service, loaded
// from environment variables at startup.
type Config struct {
	HTTPPort    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string
	CartTTL     time.Duration
	SkipConfirm bool
}
