package handler

import (
	"errors"
	"net/http"

	"github.com/climavista/climavista/internal/api/models"
	"github.com/climavista/climavista/internal/api/response"
	"github.com/climavista/climavista/internal/location"
)

// resolveLocation reads the location query parameter and resolves it against
// the catalog. An empty parameter falls back to the default location. On an
// unknown ID it writes a 404 and reports false.
func resolveLocation(w http.ResponseWriter, r *http.Request) (location.Location, bool) {
	id := r.URL.Query().Get("location")
	if id == "" {
		return location.Default, true
	}

	loc, err := location.FindByID(id)
	if err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			response.NotFound(w, r, "unknown location: "+id)
		} else {
			response.InternalError(w, r, "location lookup failed")
		}
		return location.Location{}, false
	}
	return loc, true
}

// locationRef converts a catalog location to its response form.
func locationRef(loc location.Location) models.LocationRef {
	return models.LocationRef{
		ID:      loc.ID,
		Name:    loc.Name,
		Country: loc.Country,
		Lat:     loc.Lat,
		Lon:     loc.Lon,
	}
}

// MetadataHandler serves the static catalogs the clients render from.
type MetadataHandler struct{}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{}
}

// ListLocations handles GET /v1/locations - the supported location catalog.
func (h *MetadataHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"items":   location.Catalog,
		"default": location.Default.ID,
	})
}
