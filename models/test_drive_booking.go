package models

import "time"

// 試駕預約狀態
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusNoShow    = "NO_SHOW"
)

// TestDriveBooking 試駕預約表：同一 (user, car) 允許多筆歷史紀錄
type TestDriveBooking struct {
	BookingID   int       `json:"booking_id" gorm:"primaryKey;autoIncrement;type:INT"`
	CarID       int       `json:"car_id" gorm:"index;not null;type:INT" binding:"required,gt=0"`
	UserID      int       `json:"user_id" gorm:"index;not null;type:INT"`
	BookingDate time.Time `json:"booking_date" gorm:"type:date;not null"`
	StartTime   string    `json:"start_time" gorm:"type:varchar(5);not null"` // HH:MM
	EndTime     string    `json:"end_time" gorm:"type:varchar(5);not null"`   // HH:MM
	Status      string    `json:"status" gorm:"type:enum('PENDING','CONFIRMED','COMPLETED','CANCELLED','NO_SHOW');default:'PENDING'"`
	Notes       string    `json:"notes" gorm:"type:varchar(255)"`

	Car  Car  `json:"-" gorm:"foreignKey:CarID;references:CarID"`
	User User `json:"-" gorm:"foreignKey:UserID;references:UserID"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName 指定表名
func (TestDriveBooking) TableName() string {
	return "test_drive_booking"
}

type TestDriveBookingResponse struct {
	BookingID   int    `json:"booking_id"`
	CarID       int    `json:"car_id"`
	UserID      int    `json:"user_id"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func (b *TestDriveBooking) ToResponse() TestDriveBookingResponse {
	return TestDriveBookingResponse{
		BookingID:   b.BookingID,
		CarID:       b.CarID,
		UserID:      b.UserID,
		BookingDate: b.BookingDate.Format("2006-01-02"),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      b.Status,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
