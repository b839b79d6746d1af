package seed

import (
	"microblog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInReactions is the fixed reaction-kind catalog. The ids are stable:
// clients may hard-code them and stored reactions reference them by id.
var BuiltInReactions = []models.ReactionReference{
	{ID: 1, Name: "like"},
	{ID: 2, Name: "dislike"},
	{ID: 3, Name: "love"},
	{ID: 4, Name: "sad"},
}

// ReactionReferences seeds the reaction catalog. Safe to run on every start:
// existing rows are left untouched.
func ReactionReferences(db *gorm.DB) error {
	for _, ref := range BuiltInReactions {
		ref := ref
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&ref).Error; err != nil {
			return err
		}
	}
	return nil
}
