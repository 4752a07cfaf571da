package models

import (
	"strings"
	"time"

	"fyyur/internal/types"
)

const ShowStartTimeLayout = "2006-01-02 15:04:05"

// Show associates one artist with one venue at a point in time.
// Both foreign keys cascade so deleting a venue removes its shows.
type Show struct {
	BaseModel
	ArtistID  int       `gorm:"not null;index:idx_shows_artist_id"                         json:"artistId"`
	VenueID   int       `gorm:"not null;index:idx_shows_venue_id"                          json:"venueId"`
	StartTime time.Time `gorm:"not null;index:idx_shows_start_time"                        json:"startTime"`
	Artist    *Artist   `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE;"           json:"artist,omitempty"`
	Venue     *Venue    `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE;"            json:"venue,omitempty"`
}

// ParseShowStartTime reads a start time written as ShowStartTimeLayout in the
// server's local zone. Out-of-range parts such as month 13 are rejected.
func ParseShowStartTime(value string) (time.Time, error) {
	startTime, err := time.ParseInLocation(ShowStartTimeLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, types.Validationf("start_time %q: %v", value, err)
	}
	return startTime, nil
}

// IsPast reports whether the show started before now
func (s *Show) IsPast(now time.Time) bool {
	return s.StartTime.Before(now)
}

// PartitionShows splits shows into past and upcoming relative to now, keeping order.
func PartitionShows(shows []*Show, now time.Time) (past []*Show, upcoming []*Show) {
	past = make([]*Show, 0)
	upcoming = make([]*Show, 0)
	for _, show := range shows {
		if show.IsPast(now) {
			past = append(past, show)
		} else {
			upcoming = append(upcoming, show)
		}
	}
	return past, upcoming
}

// Listing flattens the show with its preloaded venue and artist
func (s *Show) Listing() types.ShowListing {
	listing := types.ShowListing{
		ID:        s.ID,
		VenueID:   s.VenueID,
		ArtistID:  s.ArtistID,
		StartTime: s.StartTime,
	}
	if s.Venue != nil {
		listing.VenueName = s.Venue.Name
		listing.VenueImageLink = s.Venue.ImageLink
	}
	if s.Artist != nil {
		listing.ArtistName = s.Artist.Name
		listing.ArtistImageLink = s.Artist.ImageLink
	}
	return listing
}

func ShowListings(shows []*Show) []types.ShowListing {
	listings := make([]types.ShowListing, 0, len(shows))
	for _, show := range shows {
		listings = append(listings, show.Listing())
	}
	return listings
}
