// Package model holds the GORM persistence models mirroring the database schema.
package model

import "time"

// UserModel mirrors the 'user' table. The email is the primary key and the
// username carries its own unique constraint; both back the service's
// uniqueness invariant under concurrent writes.
type UserModel struct {
	Email     string  `gorm:"type:text;primaryKey"`
	Username  string  `gorm:"type:text;unique"`
	Password  string  `gorm:"type:text;not null"`
	Bio       string  `gorm:"type:text;default:''"`
	Image     *string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "user"
}
