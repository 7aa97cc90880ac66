package utils

import (
	"fmt"
	"net/url"
)

// WithSearchPath returns baseURL with its search_path pinned to schema, so
// each environment can keep its deals in its own schema of a shared database.
func WithSearchPath(baseURL, schema string) (string, error) {
	if schema == "" {
		return "", fmt.Errorf("schema must be non-empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid DB URL: %w", err)
	}

	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
