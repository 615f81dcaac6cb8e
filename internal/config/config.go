// Package config centralizes the flag parsing shared by the sign's four
// cmd/* binaries.
package config

import "flag"

// Defaults for the sign's geometry and broker location, matching
// spec.md §3 (320x64) and §6 (Unix-socket broker).
const (
	DefaultWidth      = 320
	DefaultHeight     = 64
	DefaultFPS        = 240
	DefaultBrokerPath = "/var/run/ledsign/broker.sock"
	DefaultInterface  = "eth0"
	DefaultI2CBus     = "1"
)

// Common holds the flags every cmd/* binary accepts.
type Common struct {
	Debug  bool
	Broker string
}

// RegisterCommon registers the flags shared by every process onto fs.
func RegisterCommon(fs *flag.FlagSet) *Common {
	c := &Common{}
	fs.BoolVar(&c.Debug, "debug", false, "enable verbose logging")
	fs.StringVar(&c.Broker, "broker", DefaultBrokerPath, "path to the broker's Unix domain socket")
	return c
}
