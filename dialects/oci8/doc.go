// Package oci8 registers mattn/go-oci8 as the "oci8" driver. It is only built with the
// oci8 build tag since go-oci8 needs cgo and an Oracle client found through pkg-config.
//
// go-oci8 reports Oracle errors as text, so error codes come from the ORA-NNNNN token of
// the message.
package oci8
