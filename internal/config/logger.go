package config

import (
	"go.uber.org/zap"
)

// NewLogger builds a production logger for APP_ENV=production and a
// development logger otherwise.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
