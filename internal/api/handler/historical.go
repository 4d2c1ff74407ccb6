package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/climavista/climavista/internal/api/models"
	"github.com/climavista/climavista/internal/api/response"
	"github.com/climavista/climavista/internal/historical"
)

// defaultRange is used when the range query parameter is absent.
const defaultRange = "week"

// customRange selects explicit start/end dates instead of a preset.
const customRange = "custom"

// HistoricalHandler handles historical weather and bookmark endpoints.
type HistoricalHandler struct {
	historicalService *historical.Service
}

// NewHistoricalHandler creates a new HistoricalHandler.
func NewHistoricalHandler(historicalService *historical.Service) *HistoricalHandler {
	return &HistoricalHandler{historicalService: historicalService}
}

// ListRanges handles GET /v1/historical/ranges - the preset range catalog.
func (h *HistoricalHandler) ListRanges(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"items":   h.historicalService.RangeOptions(),
		"default": defaultRange,
	})
}

// GetAggregate handles GET /v1/historical - aggregated archive statistics
// for a location over a preset or custom date range.
func (h *HistoricalHandler) GetAggregate(w http.ResponseWriter, r *http.Request) {
	loc, ok := resolveLocation(w, r)
	if !ok {
		return
	}
	startDate, endDate, ok := h.resolveDates(w, r)
	if !ok {
		return
	}

	aggregate, err := h.historicalService.GetAggregate(r.Context(), loc, startDate, endDate)
	if err != nil {
		h.writeHistoricalError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.HistoricalResponse{
		Location:  locationRef(loc),
		StartDate: startDate,
		EndDate:   endDate,
		Aggregate: aggregate,
	})
}

// GetAnomalies handles GET /v1/historical/anomalies - year-over-year
// comparison for the selected range. Responds 204 when no baseline data
// exists for the previous year.
func (h *HistoricalHandler) GetAnomalies(w http.ResponseWriter, r *http.Request) {
	loc, ok := resolveLocation(w, r)
	if !ok {
		return
	}
	startDate, endDate, ok := h.resolveDates(w, r)
	if !ok {
		return
	}

	anomalies, err := h.historicalService.GetAnomalies(r.Context(), loc, startDate, endDate)
	if err != nil {
		h.writeHistoricalError(w, r, err)
		return
	}
	if anomalies == nil {
		response.NoContent(w, r)
		return
	}

	response.JSON(w, r, http.StatusOK, models.AnomaliesResponse{
		Location:  locationRef(loc),
		StartDate: startDate,
		EndDate:   endDate,
		Anomalies: anomalies,
	})
}

// ListBookmarks handles GET /v1/bookmarks - saved range bookmarks.
func (h *HistoricalHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	items := h.historicalService.Bookmarks().List(r.Context())
	response.JSON(w, r, http.StatusOK, models.BookmarkList{Items: items})
}

// CreateBookmark handles POST /v1/bookmarks - save a location and range.
func (h *HistoricalHandler) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	var input models.BookmarkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := models.Validate(input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation error", fieldErrors)
		return
	}
	if input.DateRange == customRange && input.Custom == nil {
		response.BadRequest(w, r, "custom ranges need explicit dates", []models.FieldError{
			{Field: "customDates", Message: "this field is required", Code: "required"},
		})
		return
	}

	var custom *historical.CustomDates
	if input.Custom != nil {
		if err := historical.ValidateDates(input.Custom.Start, input.Custom.End); err != nil {
			response.BadRequest(w, r, err.Error(), nil)
			return
		}
		custom = &historical.CustomDates{Start: input.Custom.Start, End: input.Custom.End}
	}

	bookmark, err := h.historicalService.Bookmarks().Add(r.Context(), input.LocationID, input.DateRange, custom)
	if err != nil {
		response.InternalError(w, r, "failed to save bookmark")
		return
	}

	response.Created(w, r, fmt.Sprintf("/v1/bookmarks/%s", bookmark.ID), bookmark)
}

// DeleteBookmark handles DELETE /v1/bookmarks/{bookmarkId}.
func (h *HistoricalHandler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	bookmarkID := chi.URLParam(r, "bookmarkId")
	if bookmarkID == "" {
		response.BadRequest(w, r, "bookmarkId is required", nil)
		return
	}

	if err := h.historicalService.Bookmarks().Remove(r.Context(), bookmarkID); err != nil {
		if errors.Is(err, historical.ErrBookmarkNotFound) {
			response.NotFound(w, r, "bookmark not found")
			return
		}
		response.InternalError(w, r, "failed to delete bookmark")
		return
	}

	response.NoContent(w, r)
}

// resolveDates resolves the range/start/end query parameters to a concrete
// date pair. On a bad range it writes a 400 and reports false.
func (h *HistoricalHandler) resolveDates(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	query := r.URL.Query()
	rangeValue := query.Get("range")
	if rangeValue == "" {
		rangeValue = defaultRange
	}

	if rangeValue == customRange {
		startDate, endDate := query.Get("start"), query.Get("end")
		if err := historical.ValidateDates(startDate, endDate); err != nil {
			response.BadRequest(w, r, err.Error(), []models.FieldError{
				{Field: "start", Message: "must be a date in YYYY-MM-DD format", Code: "datetime"},
				{Field: "end", Message: "must be a date in YYYY-MM-DD format", Code: "datetime"},
			})
			return "", "", false
		}
		return startDate, endDate, true
	}

	for _, option := range h.historicalService.RangeOptions() {
		if option.Value == rangeValue {
			return option.StartDate, option.EndDate, true
		}
	}

	response.BadRequest(w, r, "unknown range: "+rangeValue, []models.FieldError{
		{Field: "range", Message: "must be one of: week month 3months 6months custom", Code: "oneof"},
	})
	return "", "", false
}

func (h *HistoricalHandler) writeHistoricalError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, historical.ErrInvalidDateRange):
		response.BadRequest(w, r, err.Error(), nil)
	case errors.Is(err, historical.ErrProviderUnavailable):
		response.ServiceUnavailable(w, r, "archive provider is unavailable")
	case errors.Is(err, historical.ErrMalformedResponse):
		response.ServiceUnavailable(w, r, "archive provider returned an unusable response")
	default:
		response.InternalError(w, r, "failed to load historical weather")
	}
}
