package models

import (
	"regexp"

	"fyyur/internal/types"
)

// linkPattern matches the start of an http(s) URL with a dotted host.
var linkPattern = regexp.MustCompile(
	`^https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*)`,
)

// ValidateLink accepts an empty value (no link) or a value shaped like an http(s) URL.
func ValidateLink(field, value string) error {
	if value == "" {
		return nil
	}
	if !linkPattern.MatchString(value) {
		return types.Validationf("%s is not a valid link: %q", field, value)
	}
	return nil
}

// Links groups the three link fields venues and artists share
type Links struct {
	ImageLink    string `gorm:"type:text" json:"imageLink"`
	FacebookLink string `gorm:"type:text" json:"facebookLink"`
	WebsiteLink  string `gorm:"type:text" json:"websiteLink"`
}

// SetLinks validates every link before assigning any of them.
func (l *Links) SetLinks(image, facebook, website string) error {
	if err := ValidateLink("image_link", image); err != nil {
		return err
	}
	if err := ValidateLink("facebook_link", facebook); err != nil {
		return err
	}
	if err := ValidateLink("website_link", website); err != nil {
		return err
	}

	l.ImageLink = image
	l.FacebookLink = facebook
	l.WebsiteLink = website
	return nil
}

func (l Links) validate() error {
	if err := ValidateLink("image_link", l.ImageLink); err != nil {
		return err
	}
	if err := ValidateLink("facebook_link", l.FacebookLink); err != nil {
		return err
	}
	return ValidateLink("website_link", l.WebsiteLink)
}
