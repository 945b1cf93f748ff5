package postgres

import (
	"encoding/json"

	"github.com/google/uuid"
)

func marshalMap(data map[string]string) []byte {
	if len(data) == 0 {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return b
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// validID rejects identifiers that cannot be a UUID before they reach the server.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
