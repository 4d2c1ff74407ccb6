package models

import "github.com/climavista/climavista/internal/historical"

// HistoricalResponse is the payload for GET /v1/historical.
type HistoricalResponse struct {
	Location  LocationRef           `json:"location"`
	StartDate string                `json:"startDate"`
	EndDate   string                `json:"endDate"`
	Aggregate *historical.Aggregate `json:"aggregate"`
}

// AnomaliesResponse is the payload for GET /v1/historical/anomalies.
type AnomaliesResponse struct {
	Location  LocationRef                `json:"location"`
	StartDate string                     `json:"startDate"`
	EndDate   string                     `json:"endDate"`
	Anomalies *historical.ClimateAnomaly `json:"anomalies"`
}

// BookmarkCreateRequest is the body of POST /v1/bookmarks.
type BookmarkCreateRequest struct {
	LocationID string              `json:"locationId" validate:"required"`
	DateRange  string              `json:"dateRange" validate:"required"`
	Custom     *CustomDatesRequest `json:"customDates,omitempty"`
}

// CustomDatesRequest carries explicit start and end dates for a custom
// bookmark range.
type CustomDatesRequest struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}

// BookmarkList is the payload for GET /v1/bookmarks.
type BookmarkList struct {
	Items []historical.Bookmark `json:"items"`
}
