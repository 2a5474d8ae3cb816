// Package server adapts the roman converter to the HTTP API.
package server
