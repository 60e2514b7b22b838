package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"carhub/database"
	"carhub/models"

	"gorm.io/gorm"
)

// 試駕預約操作的錯誤類型，handler 據此決定回應狀態碼
var (
	ErrBookingConflict       = errors.New("active booking already exists for this car")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrNotBookingOwner       = errors.New("booking belongs to another user")
	ErrBookingNotCancellable = errors.New("booking cannot be cancelled in its current status")
	ErrInvalidBookingStatus  = errors.New("invalid booking status")
)

// BookTestDrive 建立試駕預約，初始狀態為 PENDING
// 車輛必須存在且為可售狀態；同一 (user, car) 已有 PENDING/CONFIRMED 預約時拒絕
func BookTestDrive(booking *models.TestDriveBooking) error {
	var car models.Car
	if err := database.DB.First(&car, booking.CarID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Car with ID %d not found", booking.CarID)
			return ErrCarNotFound
		}
		log.Printf("Failed to find car %d: %v", booking.CarID, err)
		return fmt.Errorf("failed to find car %d: %w", booking.CarID, err)
	}
	if car.Status != models.CarStatusAvailable {
		return fmt.Errorf("car %d is not available for test drive", booking.CarID)
	}

	// 檢查是否已有進行中的預約
	var existing models.TestDriveBooking
	err := database.DB.
		Where("user_id = ? AND car_id = ?", booking.UserID, booking.CarID).
		Where("status IN ?", []string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		First(&existing).Error
	if err == nil {
		log.Printf("User %d already has an active booking for car %d", booking.UserID, booking.CarID)
		return ErrBookingConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check existing booking: %v", err)
		return fmt.Errorf("failed to check existing booking: %w", err)
	}

	booking.Status = models.BookingStatusPending
	if err := database.DB.Create(booking).Error; err != nil {
		log.Printf("Failed to create test drive booking: %v", err)
		return fmt.Errorf("failed to create test drive booking: %w", err)
	}

	log.Printf("Successfully created test drive booking %d for user %d car %d", booking.BookingID, booking.UserID, booking.CarID)
	return nil
}

// CancelTestDrive 取消試駕預約：本人或管理員，僅限 PENDING/CONFIRMED
func CancelTestDrive(bookingID, userID int, isAdmin bool) error {
	var booking models.TestDriveBooking
	if err := database.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Booking with ID %d not found", bookingID)
			return ErrBookingNotFound
		}
		log.Printf("Failed to find booking %d: %v", bookingID, err)
		return fmt.Errorf("failed to find booking %d: %w", bookingID, err)
	}

	if !isAdmin && booking.UserID != userID {
		log.Printf("Booking %d does not belong to user %d", bookingID, userID)
		return ErrNotBookingOwner
	}
	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
		return fmt.Errorf("%w: %s", ErrBookingNotCancellable, booking.Status)
	}

	if err := database.DB.Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
		log.Printf("Failed to cancel booking %d: %v", bookingID, err)
		return fmt.Errorf("failed to cancel booking %d: %w", bookingID, err)
	}

	log.Printf("Successfully cancelled booking %d", bookingID)
	return nil
}

// GetUserTestDrives 查詢使用者的試駕預約，近期的排前面
func GetUserTestDrives(userID int) ([]models.TestDriveBooking, error) {
	var bookings []models.TestDriveBooking
	if err := database.DB.
		Preload("Car").
		Preload("Car.Images").
		Where("user_id = ?", userID).
		Order("booking_date DESC, created_at DESC").
		Find(&bookings).Error; err != nil {
		log.Printf("Failed to query test drives for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to query test drives: %w", err)
	}

	log.Printf("Successfully retrieved %d test drives for user %d", len(bookings), userID)
	return bookings, nil
}

// GetAllTestDrives 管理員查詢所有試駕預約，可依狀態過濾
func GetAllTestDrives(status string) ([]models.TestDriveBooking, error) {
	query := database.DB.
		Preload("Car").
		Preload("User")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.TestDriveBooking
	if err := query.Order("booking_date DESC, created_at DESC").Find(&bookings).Error; err != nil {
		log.Printf("Failed to query all test drives: %v", err)
		return nil, fmt.Errorf("failed to query all test drives: %w", err)
	}

	log.Printf("Successfully retrieved %d test drives", len(bookings))
	return bookings, nil
}

// UpdateTestDriveStatus 管理員更新預約狀態
func UpdateTestDriveStatus(bookingID int, status string) error {
	switch status {
	case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCompleted,
		models.BookingStatusCancelled, models.BookingStatusNoShow:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidBookingStatus, status)
	}

	var booking models.TestDriveBooking
	if err := database.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Booking with ID %d not found", bookingID)
			return ErrBookingNotFound
		}
		log.Printf("Failed to find booking %d: %v", bookingID, err)
		return fmt.Errorf("failed to find booking %d: %w", bookingID, err)
	}

	if err := database.DB.Model(&booking).Update("status", status).Error; err != nil {
		log.Printf("Failed to update booking %d status: %v", bookingID, err)
		return fmt.Errorf("failed to update booking %d status: %w", bookingID, err)
	}

	log.Printf("Successfully updated booking %d status to %s", bookingID, status)
	return nil
}

// CheckExpiredBookings 把預約日期已過、仍為 PENDING/CONFIRMED 的試駕標記為 NO_SHOW
// 由 main.go 的 cron 定期觸發
func CheckExpiredBookings() error {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	result := database.DB.Model(&models.TestDriveBooking{}).
		Where("booking_date < ?", today).
		Where("status IN ?", []string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Update("status", models.BookingStatusNoShow)
	if result.Error != nil {
		log.Printf("Failed to mark expired bookings: %v", result.Error)
		return fmt.Errorf("failed to mark expired bookings: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		log.Printf("Marked %d expired bookings as NO_SHOW", result.RowsAffected)
	}
	return nil
}
