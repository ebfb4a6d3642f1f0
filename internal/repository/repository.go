package repository

import "gorm.io/gorm"

// creatorFields limits the preloaded creator to the identity fields exposed
// alongside list results.
func creatorFields(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}
