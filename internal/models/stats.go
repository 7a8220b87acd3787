package models

import "math"

// Stats summarizes the engine contents.
type Stats struct {
	Plans     int     `json:"plans"`
	Photos    int     `json:"photos"`
	SizeBytes int     `json:"sizeBytes"`
	SizeKB    float64 `json:"sizeKB"`
}

// NewStats derives SizeKB (two decimals) from the image size.
func NewStats(plans, photos, sizeBytes int) Stats {
	return Stats{
		Plans:     plans,
		Photos:    photos,
		SizeBytes: sizeBytes,
		SizeKB:    math.Round(float64(sizeBytes)/1024*100) / 100,
	}
}
