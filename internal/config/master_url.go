package config

import (
	"slices"
	"strings"
)

// ResolveMasterURL picks the site URL for the course. An explicit URL wins;
// otherwise hosts in knownHosts publish to productionURL and everything else
// falls back to the local development server.
func ResolveMasterURL(explicit, hostname string, knownHosts []string, productionURL, localURL string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	if slices.Contains(knownHosts, hostname) {
		return productionURL
	}
	return localURL
}
