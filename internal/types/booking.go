package types

import "strings"

// Form is the flat key-value submission received from the client.
// Keys may repeat (genres), so every key maps to its list of values.
type Form map[string][]string

// Has reports whether the key was submitted at all, even with an empty value
func (f Form) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Get returns the first value for key, or "" when absent
func (f Form) Get(key string) string {
	values := f[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Trimmed returns the first value for key with surrounding whitespace removed
func (f Form) Trimmed(key string) string {
	return strings.TrimSpace(f.Get(key))
}

// All returns every value submitted for key
func (f Form) All(key string) []string {
	return f[key]
}

// Add appends a value for key
func (f Form) Add(key, value string) {
	f[key] = append(f[key], value)
}

// Set replaces all values for key
func (f Form) Set(key, value string) {
	f[key] = []string{value}
}

// Seeking reads a looking-for flag. present is false when the key was not
// submitted at all. A "y" without a looking_description key is a validation failure.
func (f Form) Seeking(key string) (present bool, seeking bool, description string, err error) {
	if !f.Has(key) {
		return false, false, "", nil
	}

	seeking = f.Get(key) == SeekingYes
	if seeking && !f.Has(FormLookingDescription) {
		return true, false, "", Validationf("%s is set without %s", key, FormLookingDescription)
	}

	return true, seeking, f.Get(FormLookingDescription), nil
}

const (
	FormName               = "name"
	FormAddress            = "address"
	FormPhone              = "phone"
	FormImageLink          = "image_link"
	FormFacebookLink       = "facebook_link"
	FormWebsiteLink        = "website_link"
	FormCity               = "city"
	FormState              = "state"
	FormGenres             = "genres"
	FormLookingForArtist   = "looking_for_artist"
	FormLookingForVenue    = "looking_for_venue"
	FormLookingDescription = "looking_description"
	FormArtistID           = "artist_id"
	FormVenueID            = "venue_id"
	FormStartTime          = "start_time"
	FormSearchTerm         = "search_term"

	SeekingYes = "y"

	GenericFailureMessage = "An error has occurred!"
)

// Outcome is the signal a submission reports back to the request dispatcher
type Outcome struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Redirect string      `json:"redirect"`
	Kind     FailureKind `json:"-"`
	RecordID int         `json:"id,omitempty"`
}

// Failed builds the generic failure outcome; the specific cause stays in Kind
func Failed(kind FailureKind, redirect string) Outcome {
	return Outcome{
		Success:  false,
		Message:  GenericFailureMessage,
		Redirect: redirect,
		Kind:     kind,
	}
}

// Succeeded builds a success outcome
func Succeeded(message, redirect string, id int) Outcome {
	return Outcome{
		Success:  true,
		Message:  message,
		Redirect: redirect,
		RecordID: id,
	}
}
