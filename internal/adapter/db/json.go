package db

import (
	"encoding/json"

	"github.com/jmoiron/sqlx/types"
)

func marshalJSONText(value any) (types.JSONText, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return types.JSONText(raw), nil
}

// nonNil keeps empty JSON columns as [] rather than null.
func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
