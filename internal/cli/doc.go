// Package cli parses the psfleet command line into an app.Config.
package cli
