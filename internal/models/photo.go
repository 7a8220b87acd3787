package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tripkeeper/internal/common"
)

// Photo is a stored photo record. Tags and Exif are decoded from their JSON
// columns; Img and Exif are fixed at insert time.
type Photo struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	Date      string   `json:"date"`
	Img       string   `json:"img"`
	Tags      []string `json:"tags"`
	Exif      Exif     `json:"exif"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt *string  `json:"updatedAt"`
	IsCustom  bool     `json:"isCustom,omitempty"`
}

// Exif is the camera metadata kept alongside a photo: a JSON object held
// verbatim, so every key survives a round trip. nil means no metadata.
type Exif json.RawMessage

// MarshalJSON writes the object as stored, or null.
func (e Exif) MarshalJSON() ([]byte, error) {
	if len(e) == 0 {
		return []byte("null"), nil
	}
	return e, nil
}

// UnmarshalJSON accepts a JSON object or null. Anything else is rejected.
func (e *Exif) UnmarshalJSON(b []byte) error {
	v, err := parseExif(b)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Fields decodes the object into a map; numbers stay as json.Number.
func (e Exif) Fields() (map[string]any, error) {
	if len(e) == 0 {
		return nil, nil
	}
	d := json.NewDecoder(bytes.NewReader(e))
	d.UseNumber()
	var m map[string]any
	if err := d.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode exif: %w", err)
	}
	return m, nil
}

// Lookup returns the first of keys present in the object, compared case
// insensitively, formatted as text.
func (e Exif) Lookup(keys ...string) (string, bool) {
	m, err := e.Fields()
	if err != nil || m == nil {
		return "", false
	}
	for _, want := range keys {
		for k, v := range m {
			if strings.EqualFold(k, want) && v != nil {
				return fmt.Sprint(v), true
			}
		}
	}
	return "", false
}

func parseExif(b []byte) (Exif, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, nil
	}
	if b[0] != '{' || !json.Valid(b) {
		return nil, fmt.Errorf("%w: exif must be a JSON object", common.ErrInvalidInput)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return nil, fmt.Errorf("%w: exif: %v", common.ErrInvalidInput, err)
	}
	return Exif(buf.Bytes()), nil
}

// PhotoInput carries the fields of a new photo. Location, Date, Tags and
// Exif are optional.
type PhotoInput struct {
	Title    string   `json:"title"`
	Location string   `json:"location"`
	Date     string   `json:"date"`
	Img      string   `json:"img"`
	Tags     []string `json:"tags"`
	Exif     Exif     `json:"exif"`
}

// Validate reports a common.ErrInvalidInput when title or img is missing.
func (in PhotoInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Img) == "" {
		return fmt.Errorf("%w: img is required", common.ErrInvalidInput)
	}
	return nil
}

// PhotoUpdate is the full set of columns the update path overwrites.
type PhotoUpdate struct {
	Title    string   `json:"title"`
	Location string   `json:"location"`
	Date     string   `json:"date"`
	Tags     []string `json:"tags"`
}

// Validate requires a title, matching the NOT NULL column.
func (u PhotoUpdate) Validate() error {
	if strings.TrimSpace(u.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrInvalidInput)
	}
	return nil
}

// PhotoUpdateResult echoes what the update path wrote. Matched is false when
// no row had the given id; the other fields are filled in either way.
type PhotoUpdateResult struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	Date      string   `json:"date"`
	Tags      []string `json:"tags"`
	UpdatedAt string   `json:"updatedAt"`
	Matched   bool     `json:"-"`
}
