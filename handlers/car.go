package handlers

import (
	"log"
	"net/http"
	"strconv"

	"carhub/models"
	"carhub/services"

	"github.com/gin-gonic/gin"
)

// SearchCars 搜尋車輛：全部條件皆為可選，頁碼與每頁筆數有預設值
func SearchCars(c *gin.Context) {
	params := services.CarSearchParams{
		Search:       c.Query("search"),
		Brand:        c.Query("brand"),
		BodyType:     c.Query("bodyType"),
		FuelType:     c.Query("fuelType"),
		Transmission: c.Query("transmission"),
		SortBy:       c.Query("sortBy"),
	}

	if minPriceStr := c.Query("minPrice"); minPriceStr != "" {
		minPrice, err := strconv.ParseFloat(minPriceStr, 64)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "無效的最低價格", "invalid minPrice")
			return
		}
		params.MinPrice = minPrice
	}
	if maxPriceStr := c.Query("maxPrice"); maxPriceStr != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "無效的最高價格", "invalid maxPrice")
			return
		}
		params.MaxPrice = maxPrice
		params.HasMaxPrice = true
	}
	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "無效的頁碼", "invalid page")
			return
		}
		params.Page = page
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "無效的每頁筆數", "invalid limit")
			return
		}
		params.Limit = limit
	}

	// 未登入時 user_id 為 0，不標記收藏狀態
	userID := c.GetInt("user_id")

	result, err := services.SearchCars(params, userID)
	if err != nil {
		log.Printf("Failed to search cars: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "搜尋車輛失敗", "failed to search cars")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", result)
}

// GetCarFilters 查詢搜尋面板用的篩選選項
func GetCarFilters(c *gin.Context) {
	facets, err := services.GetCarFilters()
	if err != nil {
		log.Printf("Failed to get car filters: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢篩選選項失敗", "failed to get car filters")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", facets)
}

// GetCar 查詢單一車輛的詳細頁資料
func GetCar(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("Invalid car ID: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的車輛ID", "invalid car id")
		return
	}

	userID := c.GetInt("user_id")

	detail, err := services.GetCarByID(id, userID)
	if err != nil {
		log.Printf("Failed to get car %d: %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "伺服器錯誤", "failed to get car")
		return
	}
	if detail == nil {
		ErrorResponse(c, http.StatusNotFound, "車輛不存在", "car not found")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", detail)
}

// GetFeaturedCars 查詢首頁精選車輛
func GetFeaturedCars(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "無效的每頁筆數", "invalid limit")
			return
		}
		limit = parsed
	}

	cars, err := services.GetFeaturedCars(limit)
	if err != nil {
		log.Printf("Failed to get featured cars: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢精選車輛失敗", "failed to get featured cars")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", cars)
}

// CreateCar 新增車輛（管理員）
func CreateCar(c *gin.Context) {
	var input struct {
		models.Car
		ImageURLs []string `json:"image_urls"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error())
		return
	}

	if err := services.CreateCar(&input.Car, input.ImageURLs); err != nil {
		log.Printf("Failed to create car: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "新增車輛失敗", err.Error())
		return
	}

	resp, err := input.Car.ToResponse(false)
	if err != nil {
		log.Printf("Failed to serialize created car %d: %v", input.Car.CarID, err)
		ErrorResponse(c, http.StatusInternalServerError, "序列化車輛失敗", "failed to serialize car")
		return
	}

	SuccessResponse(c, http.StatusOK, "新增成功", resp)
}

// UpdateCar 更新車輛資料（管理員）
func UpdateCar(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("Invalid car ID: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的車輛ID", "invalid car id")
		return
	}

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

	if err := services.UpdateCar(id, updatedFields); err != nil {
		log.Printf("Failed to update car with ID %d: %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "更新車輛失敗", err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "更新成功", nil)
}

// DeleteCar 刪除車輛（管理員）
func DeleteCar(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("Invalid car ID: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的車輛ID", "invalid car id")
		return
	}

	if err := services.DeleteCar(id); err != nil {
		log.Printf("Failed to delete car with ID %d: %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "刪除車輛失敗", err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "刪除成功", nil)
}

// GetAdminCars 管理員車輛列表
func GetAdminCars(c *gin.Context) {
	cars, err := services.GetAdminCars(c.Query("search"))
	if err != nil {
		log.Printf("Failed to get admin cars: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢車輛失敗", "failed to get cars")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", cars)
}
