package bootstrap

import "go.uber.org/zap"

// NewLogger returns a development logger outside production and a JSON
// production logger otherwise
func NewLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
