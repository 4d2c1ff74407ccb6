package historical

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/climavista/climavista/internal/kv"
	"github.com/climavista/climavista/internal/location"
)

// bookmarksKey is the store key holding the bookmark list.
const bookmarksKey = "weather_bookmarks"

// BookmarkStore persists saved historical views in a kv.Store.
type BookmarkStore struct {
	store  kv.Store
	logger zerolog.Logger
	now    func() time.Time
}

// NewBookmarkStore creates a bookmark store.
func NewBookmarkStore(store kv.Store, logger zerolog.Logger) *BookmarkStore {
	return &BookmarkStore{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// List returns all bookmarks. A corrupt or unreadable list is logged and
// treated as empty rather than failing the caller.
func (b *BookmarkStore) List(ctx context.Context) []Bookmark {
	raw, err := b.store.Get(ctx, bookmarksKey)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			b.logger.Warn().Err(err).Msg("failed to read bookmarks")
		}
		return []Bookmark{}
	}

	var bookmarks []Bookmark
	if err := json.Unmarshal(raw, &bookmarks); err != nil {
		b.logger.Warn().Err(err).Msg("corrupt bookmark list")
		return []Bookmark{}
	}
	if bookmarks == nil {
		bookmarks = []Bookmark{}
	}
	return bookmarks
}

// Add saves a new bookmark and returns it with its generated ID and name.
func (b *BookmarkStore) Add(ctx context.Context, locationID, dateRange string, custom *CustomDates) (Bookmark, error) {
	bookmark := Bookmark{
		ID:         uuid.NewString(),
		LocationID: locationID,
		DateRange:  dateRange,
		Custom:     custom,
		CreatedAt:  b.now().UTC().Format(time.RFC3339),
		Name:       GenerateBookmarkName(locationID, dateRange, custom),
	}

	bookmarks := append(b.List(ctx), bookmark)
	if err := b.persist(ctx, bookmarks); err != nil {
		return Bookmark{}, err
	}
	return bookmark, nil
}

// Remove deletes a bookmark by ID. Returns ErrBookmarkNotFound when no
// bookmark has that ID.
func (b *BookmarkStore) Remove(ctx context.Context, id string) error {
	bookmarks := b.List(ctx)
	filtered := bookmarks[:0:0]
	for _, bookmark := range bookmarks {
		if bookmark.ID != id {
			filtered = append(filtered, bookmark)
		}
	}
	if len(filtered) == len(bookmarks) {
		return ErrBookmarkNotFound
	}
	return b.persist(ctx, filtered)
}

func (b *BookmarkStore) persist(ctx context.Context, bookmarks []Bookmark) error {
	if bookmarks == nil {
		bookmarks = []Bookmark{}
	}
	raw, err := json.Marshal(bookmarks)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	if err := b.store.Set(ctx, bookmarksKey, raw); err != nil {
		return fmt.Errorf("persist bookmarks: %w", err)
	}
	return nil
}

// GenerateBookmarkName builds the display name: the location name plus the
// range label, or the custom dates when present.
func GenerateBookmarkName(locationID, dateRange string, custom *CustomDates) string {
	name := location.DisplayName(locationID)
	if custom != nil {
		return fmt.Sprintf("%s - %s a %s", name, custom.Start, custom.End)
	}
	return fmt.Sprintf("%s - %s", name, RangeLabel(dateRange))
}
