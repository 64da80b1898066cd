// Package descriptor holds the format-agnostic model of a parameter-server
// fleet descriptor (server-side table catalog plus per-program trainer
// participation), and the builders that populate it during resolution. The
// model mirrors the structure of the fleet descriptor file; parsing and
// serialization live in the fleetdesc package.
package descriptor
