package domain

import "time" // Time for last-login tracking

// User Model
type User struct {
	ID        uint       `gorm:"column:user_id;primaryKey" json:"user_id"`            // Primary key
	Username  string     `gorm:"size:64;uniqueIndex;not null" json:"username"`        // Unique username
	Email     string     `gorm:"size:255;uniqueIndex;not null" json:"email"`          // Unique email
	Password  string     `gorm:"not null" json:"-"`                                   // Hashed password
	FullName  string     `gorm:"column:full_name;size:255;not null" json:"full_name"` // Display name
	LastLogin *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`       // Set on successful login
}

// TableName returns the database table name for the User model
func (User) TableName() string {
	return "users"
}
