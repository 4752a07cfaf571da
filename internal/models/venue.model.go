package models

import (
	"gorm.io/gorm"
)

type Venue struct {
	BaseModel
	Links
	Name               string  `gorm:"type:text;not null;index:idx_venues_name"                    json:"name"`
	Address            string  `gorm:"type:text"                                                   json:"address"`
	Phone              string  `gorm:"type:varchar(20)"                                            json:"phone"`
	SeekingTalent      bool    `gorm:"not null;default:false"                                      json:"seekingTalent"`
	SeekingDescription string  `gorm:"type:text;not null;default:''"                               json:"seekingDescription"`
	CityID             *int    `gorm:"index:idx_venues_city_id"                                    json:"cityId,omitempty"`
	City               *City   `gorm:"foreignKey:CityID"                                           json:"city,omitempty"`
	Genres             []Genre `gorm:"many2many:venue_genres;constraint:OnDelete:CASCADE;"          json:"genres"`
	Shows              []Show  `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE;"             json:"shows,omitempty"`
}

// SetSeeking records whether the venue is looking for talent. The description is
// only replaced while seeking, matching the submission form.
func (v *Venue) SetSeeking(seeking bool, description string) {
	v.SeekingTalent = seeking
	if seeking {
		v.SeekingDescription = description
	}
}

func (v *Venue) BeforeSave(tx *gorm.DB) error {
	return v.Links.validate()
}
