package models

import (
	"gorm.io/gorm"
)

type Artist struct {
	BaseModel
	Links
	Name               string  `gorm:"type:text;not null;index:idx_artists_name"        json:"name"`
	Phone              string  `gorm:"type:varchar(20)"                                 json:"phone"`
	SeekingVenue       bool    `gorm:"not null;default:false"                           json:"seekingVenue"`
	SeekingDescription string  `gorm:"type:text;not null;default:''"                    json:"seekingDescription"`
	CityID             int     `gorm:"not null;index:idx_artists_city_id"               json:"cityId"`
	City               *City   `gorm:"foreignKey:CityID"                                json:"city,omitempty"`
	Genres             []Genre `gorm:"many2many:artist_genres;constraint:OnDelete:CASCADE;" json:"genres"`
	Shows              []Show  `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE;" json:"shows,omitempty"`
}

// SetSeeking records whether the artist is looking for a venue
func (a *Artist) SetSeeking(seeking bool, description string) {
	a.SeekingVenue = seeking
	if seeking {
		a.SeekingDescription = description
	}
}

func (a *Artist) BeforeSave(tx *gorm.DB) error {
	return a.Links.validate()
}
