package utils

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTSecret 簽發與驗證 token 用的密鑰
var JWTSecret []byte

// InitJWTSecret 從環境變數載入 JWT_SECRET，未設定時使用預設值（僅開發用）
func InitJWTSecret() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("JWT_SECRET not set, using default development secret")
		secret = "carhub-dev-secret-do-not-use-in-production"
	}
	JWTSecret = []byte(secret)
}

// GenerateToken 簽發帶有 user_id 與過期時間的 token
// 注意：token 不帶角色，權限一律由資料庫重新查詢（見 routes.AdminMiddleware）
func GenerateToken(userID int) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(JWTSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
