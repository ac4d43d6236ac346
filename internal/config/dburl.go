package config

import (
	"net/url"
	"os"

	"github.com/MILO15/JS4Python/internal/foundation/normalization"
)

// LookupEnv matches os.LookupEnv so tests can supply a fixed environment.
type LookupEnv func(key string) (string, bool)

// Environment variables consulted for the database URL.
const (
	EnvDBUser       = "DBUSER"
	EnvDBPass       = "DBPASS"
	EnvDBHost       = "DBHOST"
	EnvDBPort       = "DBPORT"
	EnvDBName       = "DBNAME"
	EnvDBURL        = "DBURL"
	EnvDevDBURL     = "DEV_DBURL"
	EnvTestDBURL    = "TEST_DBURL"
	EnvWeb2pyConfig = "WEB2PY_CONFIG"
)

// configURLVars maps WEB2PY_CONFIG values to the variable holding the URL.
var configURLVars = normalization.NewNormalizer(map[string]string{
	"production":  EnvDBURL,
	"development": EnvDevDBURL,
	"test":        EnvTestDBURL,
}, "")

// ResolveDBURL returns the database URL with environment overrides taking
// precedence over defaultURL, in this order:
//
//  1. DBUSER, DBPASS, DBHOST and DBNAME all set (DBPORT optional)
//  2. the URL variable selected by WEB2PY_CONFIG
//  3. DBURL
//  4. defaultURL
//
// A variable counts as set when it is present in the environment, even if
// empty; an empty DBPASS composes a URL without a password.
func ResolveDBURL(lookup LookupEnv, defaultURL string) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	user, hasUser := lookup(EnvDBUser)
	pass, hasPass := lookup(EnvDBPass)
	host, hasHost := lookup(EnvDBHost)
	name, hasName := lookup(EnvDBName)
	if hasUser && hasPass && hasHost && hasName {
		if port, ok := lookup(EnvDBPort); ok && port != "" {
			host += ":" + port
		}
		userinfo := url.User(user)
		if pass != "" {
			userinfo = url.UserPassword(user, pass)
		}
		u := &url.URL{
			Scheme: "postgresql",
			User:   userinfo,
			Host:   host,
			Path:   "/" + name,
		}
		return u.String()
	}

	mode, _ := lookup(EnvWeb2pyConfig)
	if key, ok := configURLVars.Lookup(mode); ok {
		if v, set := lookup(key); set {
			return v
		}
	}
	if v, ok := lookup(EnvDBURL); ok {
		return v
	}
	return defaultURL
}
