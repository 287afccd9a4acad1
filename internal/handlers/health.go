package handlers

import "net/http"

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeEnvelope(w, successEnvelope(msgHealthCheck, nil))
}
