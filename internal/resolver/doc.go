// Package resolver turns loosely typed CMS records into display models.
//
// Each collection kind has one Resolve function. Optional fields are chased
// through a fixed priority order and defaulted, so rendering code never has
// to inspect metadata itself. Resolution is pure: it performs no I/O, keeps
// no state and never fails on missing or malformed metadata.
package resolver
