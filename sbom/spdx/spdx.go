// Package spdx projects a decoded bunaudit.Lockfile into an SPDX 2.3
// document, grounded on claircore's sbom/spdx encoder.
package spdx

// Format describes the data format for the SPDX document.
type Format string

// JSONFormat is the only encoding this package emits.
const JSONFormat Format = "json"

// Version describes the SPDX version to target.
type Version string

// V2_3 is the only SPDX version this package emits.
const V2_3 Version = "v2.3"
