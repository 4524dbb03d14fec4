// Package app wires configuration, logging, the source loader, the
// dashboard service, the websocket hub, and the HTTP router into one
// runnable server.
package app
