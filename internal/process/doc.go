// Package process terminates the headless Chrome process tree left behind
// when an exporter shuts down.
package process
