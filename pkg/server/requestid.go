package server

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// requestID returns the chi-generated request ID for r, falling back to a
// freshly minted UUID when the request was not routed through chi's
// RequestID middleware (e.g. a handler constructed and invoked directly
// in a unit test, outside NewRouter).
func requestID(r *http.Request) string {
	if id := chimw.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}
