package models

// City is keyed naturally by (city, state); lookups are exact and case-sensitive.
type City struct {
	BaseModel
	City    string   `gorm:"type:text;not null;uniqueIndex:idx_cities_city_state,priority:1"       json:"city"`
	State   string   `gorm:"type:varchar(2);not null;uniqueIndex:idx_cities_city_state,priority:2" json:"state"`
	Venues  []Venue  `gorm:"foreignKey:CityID"                                                     json:"venues,omitempty"`
	Artists []Artist `gorm:"foreignKey:CityID"                                                     json:"artists,omitempty"`
}
