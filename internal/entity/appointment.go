package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment is a booked slot between a user and a teacher. Booking happens
// elsewhere; the admin panel only lists and cancels.
type Appointment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"size:64;not null;index" json:"userId"`
	TeacherID   string    `gorm:"size:64;not null;index" json:"teacherId"`
	SlotDate    string    `gorm:"size:20;not null" json:"slotDate"`
	SlotTime    string    `gorm:"size:20;not null" json:"slotTime"`
	Cancelled   bool      `gorm:"not null;default:false" json:"cancelled"`
	IsCompleted bool      `gorm:"not null;default:false" json:"isCompleted"`
	Date        time.Time `gorm:"autoCreateTime" json:"date"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
