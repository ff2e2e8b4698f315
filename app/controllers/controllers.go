// Package controllers contains the HTTP handlers. Controllers are plain
// structs over injected repositories, services and state contexts;
// nothing here touches storage directly.
package controllers

import (
	"encoding/json"
	"net/http"
)

// decodeJSONBody is a loose decoder for handlers that accept optional
// bodies; strict decoding and validation live in pkg/bind.
func decodeJSONBody(r *http.Request, dest interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}
