package models

import (
	"fyyur/internal/types"
	"fyyur/internal/utils"

	"gorm.io/gorm"
)

type Genre struct {
	BaseModel
	Title string `gorm:"type:text;not null;uniqueIndex:idx_genres_title" json:"title"`
}

// BeforeSave refuses titles that were not cleaned before lookup, so the stored
// title is always the one that was searched for.
func (g *Genre) BeforeSave(tx *gorm.DB) error {
	if g.Title == "" {
		return types.Validationf("genre title is required")
	}
	if _, dirty := utils.CleanUTF8(g.Title); dirty {
		return types.Validationf("genre title %q contains invalid characters", g.Title)
	}
	return nil
}
