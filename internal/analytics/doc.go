// Package analytics implements the customer classification pipeline:
// cleaning raw worksheet rows, splitting monthly activity into new and
// returning customers, and bucketing customers by purchase frequency.
//
// The package is pure computation. It performs no I/O, holds no state
// between runs, and takes its clock as a parameter so results are
// deterministic under test. Loading rows and presenting results belong
// to the loader, transport and report packages.
package analytics
