package handlers

import (
	"log"
	"net/http"
	"strconv"

	"carhub/models"
	"carhub/services"

	"github.com/gin-gonic/gin"
)

// GetDealershipInfo 查詢展示中心設定（不存在時自動補建預設資料）
func GetDealershipInfo(c *gin.Context) {
	info, err := services.GetDealershipInfo()
	if err != nil {
		log.Printf("Failed to get dealership info: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢展示中心資訊失敗", "failed to get dealership info")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", info)
}

// UpdateDealershipInfo 更新展示中心基本資料（管理員）
func UpdateDealershipInfo(c *gin.Context) {
	var updatedFields map[string]interface{}
	if err := c.ShouldBindJSON(&updatedFields); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error())
		return
	}

	if len(updatedFields) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "未提供任何更新字段", "no fields provided")
		return
	}

	if err := services.UpdateDealershipInfo(updatedFields); err != nil {
		log.Printf("Failed to update dealership info: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "更新展示中心資訊失敗", err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "更新成功", nil)
}

// SaveWorkingHours 整批覆寫營業時間（管理員）
func SaveWorkingHours(c *gin.Context) {
	var input struct {
		WorkingHours []models.WorkingHour `json:"working_hours" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error())
		return
	}

	if err := services.SaveWorkingHours(input.WorkingHours); err != nil {
		log.Printf("Failed to save working hours: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "儲存營業時間失敗", err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "儲存成功", nil)
}

// GetUsers 查詢所有使用者（管理員）
func GetUsers(c *gin.Context) {
	users, err := services.GetUsers()
	if err != nil {
		log.Printf("Failed to get users: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢使用者失敗", "failed to get users")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", users)
}

// UpdateUserRole 更新使用者角色（管理員）
func UpdateUserRole(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("Invalid user ID: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的使用者ID", "invalid user id")
		return
	}

	var input struct {
		Role string `json:"role" binding:"required,oneof=USER ADMIN"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error())
		return
	}

	if err := services.UpdateUserRole(id, input.Role); err != nil {
		log.Printf("Failed to update role for user %d: %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "更新角色失敗", err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "更新成功", nil)
}
