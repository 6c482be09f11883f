package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/anpep/rzchroma/internal/device"
	"github.com/anpep/rzchroma/internal/logging"
)

// maxPayloadSize bounds attribute write bodies. Payloads are exactly 3
// bytes; reading one extra byte detects oversized bodies.
const maxPayloadSize = 4

// NewHandler builds the HTTP routing for a registry.
func NewHandler(registry *Registry) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/devices", handleListDevices(registry))
	mux.HandleFunc("POST /v1/devices/{id}/{attribute}", handleWriteAttribute(registry))
	mux.HandleFunc("GET /v1/devices/{id}/stream", handleStream(registry))
	return mux
}

func handleListDevices(registry *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(registry.List()); err != nil {
			logging.Error("Failed to encode device list", zap.Error(err))
		}
	}
}

func handleWriteAttribute(registry *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		attribute := r.PathValue("attribute")

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadSize))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		if len(payload) != 3 {
			http.Error(w, "payload must be exactly 3 bytes (R,G,B)", http.StatusBadRequest)
			return
		}

		if _, err := registry.Write(id, attribute, payload); err != nil {
			writeWriteError(w, r, err)
			return
		}

		logging.Debug("Attribute written over HTTP",
			zap.String("device", id),
			zap.String("attribute", attribute),
			zap.String("remote_addr", r.RemoteAddr))
		w.WriteHeader(http.StatusNoContent)
	}
}

// writeWriteError maps a registry write failure onto an HTTP status.
func writeWriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnknownDevice), errors.Is(err, ErrUnknownAttribute):
		http.Error(w, err.Error(), http.StatusNotFound)
	case device.IsInvalidArgument(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logging.Error("Attribute write failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}
