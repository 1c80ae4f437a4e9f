package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Location is an attached point of interest. The backend wire format
// is a single "latitude,longitude" string.
type Location struct {
	Latitude  float64
	Longitude float64
}

func ParseLocation(s string) (*Location, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid location %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude: %w", err)
	}

	return &Location{Latitude: lat, Longitude: lon}, nil
}

func (l *Location) String() string {
	return strconv.FormatFloat(l.Latitude, 'f', -1, 64) +
		"," + strconv.FormatFloat(l.Longitude, 'f', -1, 64)
}
