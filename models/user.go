package models

import "strings"

// User is keyed by email. Users are seeded out of band; only the profile
// fields below the role can change afterwards.
type User struct {
	Email      string `gorm:"primaryKey;size:255" json:"email"`
	Name       string `gorm:"size:100;not null" json:"name"`
	Role       Role   `gorm:"type:varchar(20);not null" json:"role"`
	Department string `gorm:"size:100" json:"department"`
	Address    string `gorm:"size:255" json:"address"`
}

// NormalizeEmail is the stored form of an email: trimmed and lower case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type LoginForm struct {
	Email string `form:"email" binding:"required,email,max=255"`
}

type ProfileForm struct {
	Name       string `form:"name" binding:"required,max=100"`
	Address    string `form:"address" binding:"max=255"`
	Department string `form:"department" binding:"max=100"`
}
