// Package location provides the fixed catalog of supported locations.
package location

import "errors"

// ErrLocationNotFound is returned when a location ID is not in the catalog.
var ErrLocationNotFound = errors.New("location not found")

// Location represents a supported location with its coordinates and the
// bounding box used for map embeds.
type Location struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	BBox    string  `json:"bbox"`
}

// Catalog is the fixed set of Central Valley locations served by the app.
var Catalog = []Location{
	{
		ID:      "san-jose",
		Name:    "San José",
		Country: "Costa Rica",
		Lat:     9.93,
		Lon:     -84.08,
		BBox:    "-84.30,9.79,-83.80,10.16",
	},
	{
		ID:      "cartago",
		Name:    "Cartago",
		Country: "Costa Rica",
		Lat:     9.86,
		Lon:     -83.92,
		BBox:    "-84.14,9.72,-83.70,10.00",
	},
	{
		ID:      "alajuela",
		Name:    "Alajuela",
		Country: "Costa Rica",
		Lat:     10.02,
		Lon:     -84.21,
		BBox:    "-84.43,9.89,-83.99,10.15",
	},
	{
		ID:      "heredia",
		Name:    "Heredia",
		Country: "Costa Rica",
		Lat:     10.00,
		Lon:     -84.12,
		BBox:    "-84.34,9.87,-83.90,10.13",
	},
}

// Default is the location selected when none is specified.
var Default = Catalog[0]

// FindByID returns the location with the given ID.
func FindByID(id string) (Location, error) {
	for _, loc := range Catalog {
		if loc.ID == id {
			return loc, nil
		}
	}
	return Location{}, ErrLocationNotFound
}

// DisplayName returns the display name for a location ID, falling back to the
// raw ID for unknown locations. Used for generated bookmark names.
func DisplayName(id string) string {
	if loc, err := FindByID(id); err == nil {
		return loc.Name
	}
	return id
}
