// Package server runs the application's HTTP transport.
//
// It owns server lifecycle: startup, OS signal handling, and graceful
// shutdown. Request timeout policy lives here too; the framework core never
// cancels a request mid-flight.
package server
