package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"carhub/models"
	"carhub/services"

	"github.com/gin-gonic/gin"
)

// 時間格式驗證（HH:MM）
var isValidTime = func(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}

// bookingErrorStatus 把預約操作的錯誤類型對應到 HTTP 狀態碼與訊息
func bookingErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		return http.StatusNotFound, "預約不存在"
	case errors.Is(err, services.ErrNotBookingOwner):
		return http.StatusForbidden, "沒有權限操作此預約"
	case errors.Is(err, services.ErrBookingNotCancellable):
		return http.StatusBadRequest, "此預約狀態無法取消"
	case errors.Is(err, services.ErrInvalidBookingStatus):
		return http.StatusBadRequest, "無效的預約狀態"
	default:
		return http.StatusInternalServerError, "預約操作失敗"
	}
}

// BookTestDrive 建立試駕預約
func BookTestDrive(c *gin.Context) {
	var input struct {
		CarID       int    `json:"car_id" binding:"required,gt=0"`
		BookingDate string `json:"booking_date" binding:"required"`
		StartTime   string `json:"start_time" binding:"required"`
		EndTime     string `json:"end_time" binding:"required"`
		Notes       string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error())
		return
	}

	bookingDate, err := time.Parse("2006-01-02", input.BookingDate)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的預約日期（格式 YYYY-MM-DD）", "invalid booking_date")
		return
	}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if bookingDate.Before(today) {
		ErrorResponse(c, http.StatusBadRequest, "預約日期必須是今天或之後", "booking_date in the past")
		return
	}
	if !isValidTime(input.StartTime) || !isValidTime(input.EndTime) {
		ErrorResponse(c, http.StatusBadRequest, "無效的時間（格式 HH:MM）", "invalid start_time or end_time")
		return
	}
	if input.EndTime <= input.StartTime {
		ErrorResponse(c, http.StatusBadRequest, "結束時間必須晚於開始時間", "end_time must be after start_time")
		return
	}

	booking := models.TestDriveBooking{
		CarID:       input.CarID,
		UserID:      c.GetInt("user_id"),
		BookingDate: bookingDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Notes:       input.Notes,
	}

	if err := services.BookTestDrive(&booking); err != nil {
		if errors.Is(err, services.ErrCarNotFound) {
			ErrorResponse(c, http.StatusNotFound, "車輛不存在", "car not found")
			return
		}
		if errors.Is(err, services.ErrBookingConflict) {
			ErrorResponse(c, http.StatusBadRequest, "您已有這台車的試駕預約", "active booking already exists")
			return
		}
		log.Printf("Failed to book test drive: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "預約試駕失敗", err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "預約成功", booking.ToResponse())
}

// CancelTestDrive 取消自己的試駕預約
func CancelTestDrive(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("Invalid booking ID: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的預約ID", "invalid booking id")
		return
	}

	userID := c.GetInt("user_id")
	isAdmin := c.GetString("role") == models.RoleAdmin

	if err := services.CancelTestDrive(id, userID, isAdmin); err != nil {
		log.Printf("Failed to cancel booking %d: %v", id, err)
		status, message := bookingErrorStatus(err)
		ErrorResponse(c, status, message, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "取消成功", nil)
}

// GetUserTestDrives 查詢自己的試駕預約
func GetUserTestDrives(c *gin.Context) {
	userID := c.GetInt("user_id")

	bookings, err := services.GetUserTestDrives(userID)
	if err != nil {
		log.Printf("Failed to get test drives for user %d: %v", userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢試駕預約失敗", "failed to get test drives")
		return
	}

	responses := make([]models.TestDriveBookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = bookings[i].ToResponse()
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}

// GetAllTestDrives 管理員查詢所有試駕預約
func GetAllTestDrives(c *gin.Context) {
	status := c.Query("status")

	bookings, err := services.GetAllTestDrives(status)
	if err != nil {
		log.Printf("Failed to get all test drives: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢試駕預約失敗", "failed to get test drives")
		return
	}

	responses := make([]models.TestDriveBookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = bookings[i].ToResponse()
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}

// UpdateTestDriveStatus 管理員更新預約狀態
func UpdateTestDriveStatus(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("Invalid booking ID: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的預約ID", "invalid booking id")
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error())
		return
	}

	if err := services.UpdateTestDriveStatus(id, input.Status); err != nil {
		log.Printf("Failed to update booking %d status: %v", id, err)
		status, message := bookingErrorStatus(err)
		ErrorResponse(c, status, message, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "更新成功", nil)
}
