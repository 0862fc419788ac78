package server

// Server runs the document API until shutdown.
type Server interface {
	// RunServer blocks until the listener stops.
	RunServer()
	// Shutdown drains in-flight uploads and closes the listener.
	Shutdown()
}
