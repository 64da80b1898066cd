// Package program defines the read-only surface of a training computation
// graph that fleet configuration resolution consumes: an ordered operator
// list, a block variable table, and the loss/base-optimizer pair handed to
// the resolver. Programs are built and owned by the graph-construction layer;
// this package only models what resolution needs to read.
package program
