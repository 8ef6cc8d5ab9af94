package models

import (
	"time"
)

// ErrorLog captures server-side failures for the admin dashboard.
type ErrorLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ErrorType    string    `gorm:"size:100;not null" json:"error_type"`
	ErrorMessage string    `gorm:"type:text;not null" json:"error_message"`
	StackTrace   *string   `gorm:"type:text" json:"stack_trace,omitempty"`
	Endpoint     *string   `gorm:"size:255" json:"endpoint,omitempty"`
	UserInfo     *string   `gorm:"size:255" json:"user_info,omitempty"`
	Timestamp    time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

// TableName specifies the table name for ErrorLog model
func (ErrorLog) TableName() string {
	return "error_logs"
}
