package interfaces

import "net/http"

// HTTPHandler is what cmd/server mounts; the concrete gin handler asserts
// against it.
type HTTPHandler interface {
	http.Handler
}
