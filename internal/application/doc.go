// Package application builds the newsdesk System from a loaded configuration
// and wires it into the status API server. The main package only parses the
// command line and decides which of these to run.
package application
