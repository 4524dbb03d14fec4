// Package http contains the HTTP transport layer: the dashboard JSON
// API, the embedded dashboard page, and the health endpoint. Handlers
// validate input, call the dashboard service, and render responses;
// they hold no analytics logic of their own.
package http
