package config

import (
	"strings"
	"time"
)

const ServiceName = "pantry-api-gateway"

// Set at build time:
// -ldflags "-X pantrypal.app/pantry-api-gateway/config.Version=<tag> -X pantrypal.app/pantry-api-gateway/config.Commit=<sha>"
var (
	Version = "dev"
	Commit  = "unknown"
)

// EnvReloadedAt is refreshed on every environment reload.
var EnvReloadedAt = time.Now()

func IsDev() bool {
	return Version == "dev" || strings.HasPrefix(Version, "dev-")
}

// UserAgent identifies outbound calls to FatSecret and APNs.
func UserAgent() string {
	return ServiceName + "/" + Version
}
