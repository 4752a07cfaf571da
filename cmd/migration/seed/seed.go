package seed

import (
	"context"
	"fmt"

	"fyyur/internal/controllers"
	"fyyur/internal/types"

	logger "github.com/Bparsons0904/goLogger"
)

type listing struct {
	key  string
	form types.Form
}

type showListing struct {
	artist    string
	venue     string
	startTime string
}

var venues = []listing{
	{
		key: "musical_hop",
		form: types.Form{
			types.FormName:               {"The Musical Hop"},
			types.FormAddress:            {"1015 Folsom Street"},
			types.FormCity:               {"San Francisco"},
			types.FormState:              {"CA"},
			types.FormPhone:              {"123-123-1234"},
			types.FormWebsiteLink:        {"https://www.themusicalhop.com"},
			types.FormFacebookLink:       {"https://www.facebook.com/TheMusicalHop"},
			types.FormImageLink:          {"https://images.unsplash.com/photo-1543900694-133f37abaaa5?w=400"},
			types.FormGenres:             {"Jazz", "Reggae", "Swing", "Classical", "Folk"},
			types.FormLookingForArtist:   {"y"},
			types.FormLookingDescription: {"We are on the lookout for a local artist to play every two weeks. Please call us."},
		},
	},
	{
		key: "dueling_pianos",
		form: types.Form{
			types.FormName:         {"The Dueling Pianos Bar"},
			types.FormAddress:      {"335 Delancey Street"},
			types.FormCity:         {"New York"},
			types.FormState:        {"NY"},
			types.FormPhone:        {"914-003-1132"},
			types.FormWebsiteLink:  {"https://www.theduelingpianos.com"},
			types.FormFacebookLink: {"https://www.facebook.com/theduelingpianos"},
			types.FormImageLink:    {"https://images.unsplash.com/photo-1497032205916-ac775f0649ae?w=750"},
			types.FormGenres:       {"Classical", "R&B", "Hip-Hop"},
		},
	},
	{
		key: "park_square",
		form: types.Form{
			types.FormName:             {"Park Square Live Music & Coffee"},
			types.FormAddress:          {"34 Whiskey Moore Ave"},
			types.FormCity:             {"San Francisco"},
			types.FormState:            {"CA"},
			types.FormPhone:            {"415-000-1234"},
			types.FormWebsiteLink:      {"https://www.parksquarelivemusicandcoffee.com"},
			types.FormFacebookLink:     {"https://www.facebook.com/ParkSquareLiveMusicAndCoffee"},
			types.FormImageLink:        {"https://images.unsplash.com/photo-1485686531765-ba63b07845a7?w=747"},
			types.FormGenres:           {"Rock n Roll", "Jazz", "Classical", "Folk"},
			types.FormLookingForArtist: {"n"},
		},
	},
}

var artists = []listing{
	{
		key: "guns_n_petals",
		form: types.Form{
			types.FormName:               {"Guns N Petals"},
			types.FormCity:               {"San Francisco"},
			types.FormState:              {"CA"},
			types.FormPhone:              {"326-123-5000"},
			types.FormWebsiteLink:        {"https://www.gunsnpetalsband.com"},
			types.FormFacebookLink:       {"https://www.facebook.com/GunsNPetals"},
			types.FormImageLink:          {"https://images.unsplash.com/photo-1549213783-8284d0336c4f?w=300"},
			types.FormGenres:             {"Rock n Roll"},
			types.FormLookingForVenue:    {"y"},
			types.FormLookingDescription: {"Looking for shows to perform at in the San Francisco Bay Area!"},
		},
	},
	{
		key: "matt_quevedo",
		form: types.Form{
			types.FormName:         {"Matt Quevedo"},
			types.FormCity:         {"New York"},
			types.FormState:        {"NY"},
			types.FormPhone:        {"300-400-5000"},
			types.FormFacebookLink: {"https://www.facebook.com/mattquevedo923251523"},
			types.FormImageLink:    {"https://images.unsplash.com/photo-1495223153807-b916f75de8c5?w=334"},
			types.FormGenres:       {"Jazz"},
		},
	},
	{
		key: "wild_sax_band",
		form: types.Form{
			types.FormName:      {"The Wild Sax Band"},
			types.FormCity:      {"San Francisco"},
			types.FormState:     {"CA"},
			types.FormPhone:     {"432-325-5432"},
			types.FormImageLink: {"https://images.unsplash.com/photo-1558369981-f9ca78462e61?w=794"},
			types.FormGenres:    {"Jazz", "Classical"},
		},
	},
}

var shows = []showListing{
	{artist: "guns_n_petals", venue: "musical_hop", startTime: "2019-05-21 21:30:00"},
	{artist: "matt_quevedo", venue: "park_square", startTime: "2019-06-15 23:00:00"},
	{artist: "wild_sax_band", venue: "park_square", startTime: "2035-04-01 20:00:00"},
	{artist: "wild_sax_band", venue: "park_square", startTime: "2035-04-08 20:00:00"},
	{artist: "wild_sax_band", venue: "park_square", startTime: "2035-04-15 20:00:00"},
}

// Seed lists the sample venues, artists and shows through the same
// controllers the API uses.
func Seed(controllers controllers.Controllers, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding development data")

	ctx := context.Background()

	venueIDs := make(map[string]int, len(venues))
	for _, venue := range venues {
		outcome := controllers.Venue.Create(ctx, venue.form)
		if !outcome.Success {
			return log.Error("failed to seed venue", "venue", venue.key, "kind", outcome.Kind.String())
		}
		venueIDs[venue.key] = outcome.RecordID
	}

	artistIDs := make(map[string]int, len(artists))
	for _, artist := range artists {
		outcome := controllers.Artist.Create(ctx, artist.form)
		if !outcome.Success {
			return log.Error("failed to seed artist", "artist", artist.key, "kind", outcome.Kind.String())
		}
		artistIDs[artist.key] = outcome.RecordID
	}

	for _, show := range shows {
		outcome := controllers.Show.Create(ctx, types.Form{
			types.FormArtistID:  {fmt.Sprint(artistIDs[show.artist])},
			types.FormVenueID:   {fmt.Sprint(venueIDs[show.venue])},
			types.FormStartTime: {show.startTime},
		})
		if !outcome.Success {
			return log.Error(
				"failed to seed show",
				"artist", show.artist,
				"venue", show.venue,
				"kind", outcome.Kind.String(),
			)
		}
	}

	log.Info("Seeded development data",
		"venues", len(venues),
		"artists", len(artists),
		"shows", len(shows),
	)
	return nil
}
