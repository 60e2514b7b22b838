package handlers

import (
	"log"
	"net/http"
	"regexp"

	"carhub/models"
	"carhub/services"
	"carhub/utils"

	"github.com/gin-gonic/gin"
)

// 電子郵件驗證 regex
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterUser 註冊使用者資料檢查
func RegisterUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error())
		return
	}

	// 驗證電子郵件
	if !emailRegex.MatchString(user.Email) {
		ErrorResponse(c, http.StatusBadRequest, "請提供有效的電子郵件地址", "invalid email format")
		return
	}

	// 驗證密碼（最少 8 個字元，至少一個字母和一個數字）
	if len(user.Password) < 8 ||
		!regexp.MustCompile(`[a-zA-Z]`).MatchString(user.Password) ||
		!regexp.MustCompile(`[0-9]`).MatchString(user.Password) {
		ErrorResponse(c, http.StatusBadRequest, "密碼必須至少8個字符，包含字母和數字", "weak password")
		return
	}

	if err := services.RegisterUser(&user); err != nil {
		log.Printf("Failed to register user with email %s: %v", user.Email, err)
		ErrorResponse(c, http.StatusInternalServerError, "註冊失敗", err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "註冊成功", user.ToResponse())
}

// LoginUser 登入並簽發 token
func LoginUser(c *gin.Context) {
	var loginData struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginData); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error())
		return
	}

	if !emailRegex.MatchString(loginData.Email) {
		ErrorResponse(c, http.StatusBadRequest, "請提供有效的電子郵件地址", "invalid email format")
		return
	}

	user, err := services.LoginUser(loginData.Email, loginData.Password)
	if err != nil {
		log.Printf("Login failed for email %s: %v", loginData.Email, err)
		ErrorResponse(c, http.StatusUnauthorized, "登入失敗，檢查電子郵件或密碼", "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.UserID)
	if err != nil {
		log.Printf("Failed to generate token for user %d: %v", user.UserID, err)
		ErrorResponse(c, http.StatusInternalServerError, "簽發 token 失敗", "failed to generate token")
		return
	}

	SuccessResponse(c, http.StatusOK, "登入成功", gin.H{
		"token": token,
		"user":  user.ToResponse(),
	})
}

// GetProfile 查詢自己的個人資料
func GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	user, err := services.GetUserByID(userID)
	if err != nil {
		log.Printf("Failed to get profile for user %d: %v", userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "伺服器錯誤", "failed to get profile")
		return
	}
	if user == nil {
		ErrorResponse(c, http.StatusNotFound, "使用者不存在", "user not found")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", user.ToResponse())
}
