package domain

import "errors"

var (
	// ErrNoRoute means the routing service returned no candidate between two points.
	ErrNoRoute = errors.New("no route found")
	// ErrLocationNotFound means a free-text location produced no geocoding result.
	ErrLocationNotFound = errors.New("location not found")
	// ErrInvalidLocation means a location was neither text nor valid coordinates.
	ErrInvalidLocation = errors.New("invalid location")
)
