package models

import (
	"encoding/json"
	"fmt"
)

// EncodeTags renders tags as a JSON array. nil encodes as "[]".
func EncodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

// DecodeTags parses a tags column. NULL and empty text decode to an empty,
// non-nil slice.
func DecodeTags(raw *string) ([]string, error) {
	if raw == nil || *raw == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(*raw), &tags); err != nil {
		return []string{}, fmt.Errorf("decode tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// EncodeExif renders exif as compact JSON; nil becomes the literal "null" so
// the column is never left NULL.
func EncodeExif(exif Exif) (string, error) {
	v, err := parseExif(exif)
	if err != nil {
		return "", fmt.Errorf("encode exif: %w", err)
	}
	if v == nil {
		return "null", nil
	}
	return string(v), nil
}

// DecodeExif parses an exif column. NULL, empty text and JSON null decode
// to nil; anything but an object is an error.
func DecodeExif(raw *string) (Exif, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := parseExif([]byte(*raw))
	if err != nil {
		return nil, fmt.Errorf("decode exif: %w", err)
	}
	return v, nil
}
