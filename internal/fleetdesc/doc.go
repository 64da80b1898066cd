// Package fleetdesc parses user-editable fleet descriptor files into the
// descriptor model. The file is HCL mirroring the PSParameter structure: one
// server block holding the table catalog and one or more trainer blocks
// holding worker participation. File contents always win over generated
// configuration; validating how many trainer blocks are acceptable is the
// resolver's job.
package fleetdesc
