// internal/config/model.go
//
// Typed configuration model for Atrium.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                     – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `ATRIUM_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *after* unmarshalling, so the cached Config
// never stores Vault URIs—only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Remote Auth API section
//

// AuthAPI points at the remote authentication service that owns users,
// credentials, and tokens.
type AuthAPI struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout"`
}

//
// Session section
//

// Session tunes the server-side session area and form protection.
//
// CSRFKey should be a 32-byte base64url string.  It may be a `vault:`
// reference; when empty, a random per-process key is generated and
// logged as a warning.
type Session struct {
	TTL     time.Duration `koanf:"ttl"`
	CSRFKey string        `koanf:"csrf_key"`
}

//
// Database section
//

// Database configures the optional activity-log store.  An empty DSN
// disables activity recording entirely.  The DSN may be a `vault:`
// reference so credentials stay out of flat files and git history.
type Database struct {
	ActivityDSN string `koanf:"activity_dsn"`
}

//
// Geo section
//

// Geo points at an optional GeoLite2-City database used to enrich
// activity events.  Missing file = no geo enrichment, not an error.
type Geo struct {
	CityDB string `koanf:"city_db"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or ATRIUM_ROOT override) so later code
// can build absolute file paths.
type Paths struct {
	Root string // ATRIUM_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	AuthAPI  AuthAPI  `koanf:"auth_api"`
	Session  Session  `koanf:"session"`
	Database Database `koanf:"database"`
	Geo      Geo      `koanf:"geo"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
