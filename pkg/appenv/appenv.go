package appenv

import (
	"os"
	"strings"
)

// Env is the application runtime environment, read from APP_ENV.
type Env string

const (
	Production Env = "production"
	Test       Env = "test"
)

// Current returns the effective environment. Empty or unknown values are
// treated as production so that a misconfigured deployment stays locked
// down rather than wide open.
func Current() Env {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) {
	case string(Test):
		return Test
	default:
		return Production
	}
}

func IsProduction() bool { return Current() == Production }
func IsTest() bool       { return Current() == Test }
