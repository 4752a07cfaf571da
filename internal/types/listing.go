package types

import "time"

// VenueArea is one city in the venue listing
type VenueArea struct {
	CityID int            `json:"cityId"`
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

type VenueSummary struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"numUpcomingShows"`
}

type ArtistSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ShowListing is the flattened show row the listing and detail pages render
type ShowListing struct {
	ID              int       `json:"id"`
	VenueID         int       `json:"venueId"`
	VenueName       string    `json:"venueName"`
	VenueImageLink  string    `json:"venueImageLink"`
	ArtistID        int       `json:"artistId"`
	ArtistName      string    `json:"artistName"`
	ArtistImageLink string    `json:"artistImageLink"`
	StartTime       time.Time `json:"startTime"`
}

// SearchResult mirrors the {count, data} payload of the search pages
type SearchResult[T any] struct {
	Count      int    `json:"count"`
	Data       []T    `json:"data"`
	SearchTerm string `json:"searchTerm"`
}
