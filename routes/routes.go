package routes

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"carhub/database"
	"carhub/handlers"
	"carhub/models"
	"carhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// parseUserID 解析 Bearer token 並取出 user_id
func parseUserID(authHeader string) (int, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, errors.New("authorization header must be in the format 'Bearer <token>'")
	}

	// 明確要求檢查 exp 字段
	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return utils.JWTSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("invalid user_id in token")
	}
	return int(userID), nil
}

// loadUser 依 token 的 user_id 重新查詢使用者
// 角色永遠從資料庫取得，不信任 token 內容
func loadUser(userID int) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// AuthMiddleware 驗證 token 並確認使用者存在，將 user_id 與角色存入上下文
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			handlers.ErrorResponseWithCode(c, http.StatusUnauthorized, "缺少 Authorization 標頭", "Authorization header is required", "ERR_NO_AUTH_HEADER")
			c.Abort()
			return
		}

		userID, err := parseUserID(authHeader)
		if err != nil {
			log.Printf("Token parsing error: %v", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				handlers.ErrorResponseWithCode(c, http.StatusUnauthorized, "token 已過期", "Token has expired", "ERR_TOKEN_EXPIRED")
			} else {
				handlers.ErrorResponseWithCode(c, http.StatusUnauthorized, "無效的 token", err.Error(), "ERR_INVALID_TOKEN")
			}
			c.Abort()
			return
		}

		user, err := loadUser(userID)
		if err != nil {
			log.Printf("Failed to load user %d: %v", userID, err)
			handlers.ErrorResponseWithCode(c, http.StatusInternalServerError, "伺服器錯誤", "failed to load user", "ERR_LOAD_USER")
			c.Abort()
			return
		}
		if user == nil {
			handlers.ErrorResponseWithCode(c, http.StatusUnauthorized, "使用者不存在", "user record not found", "ERR_USER_NOT_FOUND")
			c.Abort()
			return
		}

		c.Set("user_id", user.UserID)
		c.Set("role", user.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware 公開端點用：帶了有效 token 就記錄身分，沒帶也放行
// 搜尋與詳細頁靠它在登入時標記收藏狀態
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		userID, err := parseUserID(authHeader)
		if err != nil {
			log.Printf("Ignoring invalid token on public endpoint: %v", err)
			c.Next()
			return
		}

		user, err := loadUser(userID)
		if err != nil || user == nil {
			c.Next()
			return
		}

		c.Set("user_id", user.UserID)
		c.Set("role", user.Role)
		c.Next()
	}
}

// AdminMiddleware 管理員專用：角色由 AuthMiddleware 從資料庫重新查出
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			handlers.ErrorResponseWithCode(c, http.StatusUnauthorized, "無法獲取角色資訊", "Role not found in context", "ERR_ROLE_NOT_FOUND")
			c.Abort()
			return
		}

		if roleStr, ok := role.(string); !ok || roleStr != models.RoleAdmin {
			handlers.ErrorResponseWithCode(c, http.StatusForbidden, "權限不足", "Admin role required", "ERR_INSUFFICIENT_PERMISSIONS")
			c.Abort()
			return
		}

		c.Next()
	}
}

func Path(router *gin.RouterGroup) {
	// 版本控制
	v1 := router.Group("/v1")
	{
		// 測試路由
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "pong"})
		})

		// 使用者路由
		users := v1.Group("/users")
		{
			// 公開路由：不需要 token 驗證
			users.POST("/register", handlers.RegisterUser) // 註冊使用者
			users.POST("/login", handlers.LoginUser)       // 登入並獲取 token

			// 受保護路由：需要 token 驗證
			usersWithAuth := users.Group("")
			usersWithAuth.Use(AuthMiddleware())
			{
				usersWithAuth.GET("/profile", handlers.GetProfile) // 查看個人資料
			}
		}

		// 車輛路由
		cars := v1.Group("/cars")
		{
			// 公開路由：帶 token 時會標記收藏狀態
			carsPublic := cars.Group("")
			carsPublic.Use(OptionalAuthMiddleware())
			{
				carsPublic.GET("", handlers.SearchCars)               // 搜尋車輛（分頁）
				carsPublic.GET("/filters", handlers.GetCarFilters)    // 篩選選項
				carsPublic.GET("/featured", handlers.GetFeaturedCars) // 首頁精選
				carsPublic.GET("/:id", handlers.GetCar)               // 車輛詳細頁
			}

			// 受保護路由：需要 token 驗證
			carsWithAuth := cars.Group("")
			carsWithAuth.Use(AuthMiddleware())
			{
				carsWithAuth.POST("/:id/save", handlers.ToggleSavedCar)  // 收藏切換
				carsWithAuth.GET("/saved", handlers.GetSavedCars)        // 查詢收藏
				carsWithAuth.POST("/image-search", handlers.ImageSearch) // 以圖搜車
			}
		}

		// 試駕路由
		testdrives := v1.Group("/testdrives")
		{
			testdrivesWithAuth := testdrives.Group("")
			testdrivesWithAuth.Use(AuthMiddleware())
			{
				testdrivesWithAuth.POST("", handlers.BookTestDrive)              // 預約試駕
				testdrivesWithAuth.GET("", handlers.GetUserTestDrives)           // 查詢自己的預約
				testdrivesWithAuth.POST("/:id/cancel", handlers.CancelTestDrive) // 取消預約
			}
		}

		// 管理員路由：一律需要 token 驗證 + 管理員角色
		admin := v1.Group("/admin")
		admin.Use(AuthMiddleware(), AdminMiddleware())
		{
			admin.GET("/cars", handlers.GetAdminCars)     // 車輛列表（不限狀態）
			admin.POST("/cars", handlers.CreateCar)       // 新增車輛
			admin.PUT("/cars/:id", handlers.UpdateCar)    // 更新車輛
			admin.DELETE("/cars/:id", handlers.DeleteCar) // 刪除車輛

			admin.GET("/testdrives", handlers.GetAllTestDrives)                  // 所有試駕預約
			admin.POST("/testdrives/:id/status", handlers.UpdateTestDriveStatus) // 更新預約狀態

			admin.GET("/settings/dealership", handlers.GetDealershipInfo)    // 展示中心設定（自動補建）
			admin.PUT("/settings/dealership", handlers.UpdateDealershipInfo) // 更新展示中心資料
			admin.PUT("/settings/working-hours", handlers.SaveWorkingHours)  // 整批覆寫營業時間
			admin.GET("/settings/users", handlers.GetUsers)                  // 使用者列表
			admin.PUT("/settings/users/:id/role", handlers.UpdateUserRole)   // 更新使用者角色
		}
	}
}
