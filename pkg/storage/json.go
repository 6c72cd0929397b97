package storage

import (
	"encoding/json"
	"fmt"
)

// PutJSON stores v JSON-encoded under key.
func PutJSON(b Backend, bucket, key []byte, v any) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return err
	}
	return b.Put(bucket, key, data)
}

// GetJSON decodes the value under key into v. It reports false when the key
// does not exist.
func GetJSON(b Backend, bucket, key []byte, v any) (bool, error) {
	data, err := b.Get(bucket, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	return true, DecodeJSON(data, v)
}

// EncodeJSON marshals a value to JSON bytes
func EncodeJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	return data, nil
}

// DecodeJSON unmarshals JSON bytes to a value
func DecodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}

	return nil
}
