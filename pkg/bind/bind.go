// Package bind turns a request body into a validated struct. It is the
// single entry point controllers use for input; malformed JSON and
// oversized bodies come back as an error, validation failures as a
// field-message map.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/ameya/config"
	"github.com/shashiranjanraj/ameya/pkg/validate"
)

const defaultBodyLimit = 4 << 20

// JSON decodes r.Body into dest and validates it. A non-nil errs map
// means validation failed; a non-nil err means the body never parsed.
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, bodyLimit())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// bodyLimit reads MAX_BODY_BYTES, defaulting to 4 MB.
func bodyLimit() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultBodyLimit
	}
	return n
}
