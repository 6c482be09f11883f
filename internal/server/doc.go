// Package server exposes attached Razer Chroma devices over a local
// HTTP API.
//
// The Registry tracks attached devices and the writable attributes each
// one registered during attach. The HTTP layer routes requests to those
// attributes:
//
//	GET  /v1/devices                       list attached devices
//	POST /v1/devices/{id}/{attribute}      write a 3-byte RGB payload
//	GET  /v1/devices/{id}/stream           WebSocket write stream
//
// The stream endpoint accepts binary WebSocket messages, each a 3-byte
// RGB payload for the attribute named by the ?attribute= query
// parameter, so clients can animate an LED without per-request HTTP
// overhead.
package server
