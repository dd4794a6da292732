// Package godror registers the OCI based godror client as the "godror" driver. It needs
// cgo and the Oracle Instant Client libraries at run time.
package godror
