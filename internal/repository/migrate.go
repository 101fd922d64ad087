package repository

import "gorm.io/gorm"

// Migrate creates the accounts and documents tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&accountModel{}, &documentModel{})
}
