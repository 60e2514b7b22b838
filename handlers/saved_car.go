package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"carhub/services"

	"github.com/gin-gonic/gin"
)

// ToggleSavedCar 收藏切換：回傳切換後的收藏狀態
func ToggleSavedCar(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("Invalid car ID: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的車輛ID", "invalid car id")
		return
	}

	userID := c.GetInt("user_id")

	saved, err := services.ToggleSavedCar(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrCarNotFound) {
			ErrorResponse(c, http.StatusNotFound, "車輛不存在", "car not found")
			return
		}
		log.Printf("Failed to toggle saved car for user %d car %d: %v", userID, id, err)
		ErrorResponse(c, http.StatusInternalServerError, "收藏操作失敗", "failed to toggle saved car")
		return
	}

	message := "已取消收藏"
	if saved {
		message = "已加入收藏"
	}
	SuccessResponse(c, http.StatusOK, message, gin.H{"saved": saved})
}

// GetSavedCars 查詢自己收藏的車輛
func GetSavedCars(c *gin.Context) {
	userID := c.GetInt("user_id")

	cars, err := services.GetSavedCars(userID)
	if err != nil {
		log.Printf("Failed to get saved cars for user %d: %v", userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢收藏失敗", "failed to get saved cars")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", cars)
}
