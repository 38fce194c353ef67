// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(handler))

Each request gets an ID (a UUID, or the incoming X-Request-ID) that is
echoed in the X-Request-ID response header and available to handlers via
RequestID(r.Context()). Start and completion are logged with the ID,
status and duration_ms.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PATCH, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key, X-Request-ID.

# JSON Helpers

Every API response uses the models.APIResponse envelope:

	middleware.SuccessResponse(w, http.StatusOK, "Election found", view)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

The hashed IP is the network identity of voters and election creators.
*/
package middleware
