package instance

import (
	"os"

	"github.com/octocat-supply/storefront/pkg/env"
)

// GetID identifies this process in logs: STOREFRONT_INSTANCE_ID, then the
// Heroku DYNO name, then the hostname.
func GetID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "local"
	}
	return env.First(host, "STOREFRONT_INSTANCE_ID", "DYNO")
}
