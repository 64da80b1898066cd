// Package resolve builds the complete parameter-server fleet configuration
// for a list of training losses: it discovers distributed lookup tables,
// assigns global table ids, populates the shared server catalog and each
// program's trainer descriptor, and merges in an optional user-supplied
// fleet descriptor file. Resolution is a single synchronous pass; every
// failure is returned before a configuration is handed out, so callers never
// see a partial result.
package resolve
