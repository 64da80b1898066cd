// Package discovery locates distributed lookup tables in a program and
// collects, per table, the worker-side input, output, and gradient variables
// that participate in pulling and pushing it.
package discovery
