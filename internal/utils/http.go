package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// WriteJSON serializes data and writes it to the response with the
// given status code and an application/json content type.
//
// If marshaling fails, it responds with 500 Internal Server Error and
// returns a wrapped error. It returns the number of body bytes written.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// ParseBearerToken extracts the credential part of an Authorization
// header of the form "Bearer <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// ClientInfo extracts the caller's IP address and user agent from the
// request. X-Real-IP wins over the socket peer address so the service
// sees real client provenance when deployed behind a reverse proxy.
func ClientInfo(r *http.Request) (clientIP, userAgent string) {
	clientIP = r.Header.Get("X-Real-IP")
	if clientIP == "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		clientIP = host
	}

	return clientIP, r.UserAgent()
}
