// Package app wires the psfleet command line tool: it loads a fleet
// descriptor file, checks it against an expected program count, and prints a
// catalog summary. The resolution library itself lives under resolve.
package app
