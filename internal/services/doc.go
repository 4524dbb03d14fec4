// Package services contains the application services between transport
// and the analytics pipeline. The dashboard service owns the cached
// snapshots and the refresh cycle; handlers stay thin.
package services
