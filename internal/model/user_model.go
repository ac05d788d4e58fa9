package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CurrentCourse struct {
	Title    string `gorm:"type:varchar(255)" json:"title"`
	Provider string `gorm:"type:varchar(255)" json:"provider"`
	Progress int    `gorm:"default:0" json:"progress"`
}

type User struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string                      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string                      `gorm:"type:varchar(255)" json:"-"`
	FullName       string                      `gorm:"type:varchar(100);not null" json:"fullName"`
	ProfilePicture *string                     `gorm:"type:text" json:"profilePicture"`
	JobPreferences datatypes.JSONSlice[string] `json:"jobPreferences"`
	CurrentCourse  CurrentCourse               `gorm:"embedded;embeddedPrefix:current_course_" json:"currentCourse"`
	LastProgressID *uuid.UUID                  `gorm:"type:uuid" json:"lastProgressId"`
	CreatedAt      time.Time                   `json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
