package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"carhub/database"
	"carhub/models"

	"gorm.io/gorm"
)

// 搜尋排序模式
const (
	SortNewest    = "newest"
	SortPriceAsc  = "priceAsc"
	SortPriceDesc = "priceDesc"
)

// DefaultSearchLimit 搜尋分頁預設每頁筆數
const DefaultSearchLimit = 6

// CarSearchParams 搜尋條件：零值欄位代表未指定
type CarSearchParams struct {
	Search       string
	Brand        string
	BodyType     string
	FuelType     string
	Transmission string
	MinPrice     float64
	MaxPrice     float64
	HasMaxPrice  bool
	SortBy       string
	Page         int
	Limit        int
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type CarSearchResult struct {
	Cars       []models.CarResponse `json:"cars"`
	Pagination Pagination           `json:"pagination"`
}

// NormalizeSearchParams 整理搜尋條件：page/limit 取回有效值、排序模式白名單
func NormalizeSearchParams(params *CarSearchParams) {
	params.Search = strings.TrimSpace(params.Search)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = DefaultSearchLimit
	}
	if params.MinPrice < 0 {
		params.MinPrice = 0
	}
	switch params.SortBy {
	case SortPriceAsc, SortPriceDesc, SortNewest:
	default:
		params.SortBy = SortNewest
	}
}

// BuildPagination 計算分頁中繼資料：pages = ceil(total / limit)
func BuildPagination(total int64, page, limit int) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}

// likeEscaper 跳脫 LIKE 的萬用字元，讓使用者輸入的 % 與 _ 當一般文字比對
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLikePattern 把關鍵字包成 %keyword% 的 LIKE 樣式
func escapeLikePattern(keyword string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
}

// buildCarSearchQuery 把搜尋條件組成查詢：count 與取頁共用同一組條件
func buildCarSearchQuery(params CarSearchParams) *gorm.DB {
	query := database.DB.Model(&models.Car{}).
		Where("status = ?", models.CarStatusAvailable)

	if params.Search != "" {
		pattern := escapeLikePattern(params.Search)
		query = query.Where(
			"LOWER(brand) LIKE ? OR LOWER(model) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if params.Brand != "" {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(params.Brand))
	}
	if params.BodyType != "" {
		query = query.Where("LOWER(body_type) = ?", strings.ToLower(params.BodyType))
	}
	if params.FuelType != "" {
		query = query.Where("LOWER(fuel_type) = ?", strings.ToLower(params.FuelType))
	}
	if params.Transmission != "" {
		query = query.Where("LOWER(transmission) = ?", strings.ToLower(params.Transmission))
	}

	query = query.Where("price >= ?", params.MinPrice)
	if params.HasMaxPrice {
		query = query.Where("price <= ?", params.MaxPrice)
	}

	return query
}

// SearchCars 搜尋車輛並分頁；userID > 0 時一併標記收藏狀態
// 超出範圍的頁碼回傳空列表與真實的分頁資訊，不算錯誤
func SearchCars(params CarSearchParams, userID int) (*CarSearchResult, error) {
	NormalizeSearchParams(&params)

	query := buildCarSearchQuery(params)

	// 先算總數，條件必須與取頁完全相同，避免 count 與頁面不一致
	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Failed to count cars: %v", err)
		return nil, fmt.Errorf("failed to count cars: %w", err)
	}

	var order string
	switch params.SortBy {
	case SortPriceAsc:
		order = "price ASC"
	case SortPriceDesc:
		order = "price DESC"
	default:
		order = "created_at DESC"
	}

	var cars []models.Car
	if err := query.
		Preload("Images").
		Order(order).
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&cars).Error; err != nil {
		log.Printf("Failed to search cars: %v", err)
		return nil, fmt.Errorf("failed to search cars: %w", err)
	}

	savedIDs, err := fetchSavedCarIDs(userID)
	if err != nil {
		return nil, err
	}

	responses, err := carsToResponses(cars, savedIDs)
	if err != nil {
		return nil, err
	}

	log.Printf("Successfully searched cars: total=%d, page=%d, returned=%d", total, params.Page, len(cars))
	return &CarSearchResult{
		Cars:       responses,
		Pagination: BuildPagination(total, params.Page, params.Limit),
	}, nil
}

// fetchSavedCarIDs 一次撈出使用者收藏的車輛 ID 集合，避免逐筆查詢
func fetchSavedCarIDs(userID int) (map[int]bool, error) {
	savedIDs := make(map[int]bool)
	if userID <= 0 {
		return savedIDs, nil
	}

	var ids []int
	if err := database.DB.Model(&models.UserSavedCar{}).
		Where("user_id = ?", userID).
		Pluck("car_id", &ids).Error; err != nil {
		log.Printf("Failed to fetch saved car IDs for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch saved car IDs: %w", err)
	}
	for _, id := range ids {
		savedIDs[id] = true
	}
	return savedIDs, nil
}

func carsToResponses(cars []models.Car, savedIDs map[int]bool) ([]models.CarResponse, error) {
	responses := make([]models.CarResponse, len(cars))
	for i := range cars {
		resp, err := cars[i].ToResponse(savedIDs[cars[i].CarID])
		if err != nil {
			log.Printf("Failed to serialize car %d: %v", cars[i].CarID, err)
			return nil, fmt.Errorf("failed to serialize car %d: %w", cars[i].CarID, err)
		}
		responses[i] = resp
	}
	return responses, nil
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type CarFilterFacets struct {
	Brands        []string   `json:"brands"`
	BodyTypes     []string   `json:"body_types"`
	FuelTypes     []string   `json:"fuel_types"`
	Transmissions []string   `json:"transmissions"`
	PriceRange    PriceRange `json:"price_range"`
}

// 沒有任何可售車輛時的預設價格區間
const (
	DefaultPriceRangeMin = 0
	DefaultPriceRangeMax = 100000
)

// sortFacets 各面向值在應用端以位元組序排序
// MySQL 預設定序不分大小寫，ORDER BY 排不出 "BMW" < "audi" 這種結果
func sortFacets(facets *CarFilterFacets) {
	sort.Strings(facets.Brands)
	sort.Strings(facets.BodyTypes)
	sort.Strings(facets.FuelTypes)
	sort.Strings(facets.Transmissions)
}

// resolvePriceRange 把彙總結果轉成價格區間，空集合（NULL）時套用預設值
func resolvePriceRange(minPrice, maxPrice sql.NullFloat64) PriceRange {
	priceRange := PriceRange{Min: DefaultPriceRangeMin, Max: DefaultPriceRangeMax}
	if minPrice.Valid {
		priceRange.Min = minPrice.Float64
	}
	if maxPrice.Valid {
		priceRange.Max = maxPrice.Float64
	}
	return priceRange
}

// GetCarFilters 計算搜尋面板用的篩選選項：各欄位的 distinct 值與價格區間
// 彙總在資料庫端完成，不把整批車輛撈回來
func GetCarFilters() (*CarFilterFacets, error) {
	facets := &CarFilterFacets{}

	available := func() *gorm.DB {
		return database.DB.Model(&models.Car{}).Where("status = ?", models.CarStatusAvailable)
	}

	if err := available().Distinct().Pluck("brand", &facets.Brands).Error; err != nil {
		log.Printf("Failed to fetch distinct brands: %v", err)
		return nil, fmt.Errorf("failed to fetch distinct brands: %w", err)
	}
	if err := available().Distinct().Pluck("body_type", &facets.BodyTypes).Error; err != nil {
		log.Printf("Failed to fetch distinct body types: %v", err)
		return nil, fmt.Errorf("failed to fetch distinct body types: %w", err)
	}
	if err := available().Distinct().Pluck("fuel_type", &facets.FuelTypes).Error; err != nil {
		log.Printf("Failed to fetch distinct fuel types: %v", err)
		return nil, fmt.Errorf("failed to fetch distinct fuel types: %w", err)
	}
	if err := available().Distinct().Pluck("transmission", &facets.Transmissions).Error; err != nil {
		log.Printf("Failed to fetch distinct transmissions: %v", err)
		return nil, fmt.Errorf("failed to fetch distinct transmissions: %w", err)
	}
	sortFacets(facets)

	var priceRow struct {
		MinPrice sql.NullFloat64
		MaxPrice sql.NullFloat64
	}
	if err := available().
		Select("MIN(price) AS min_price, MAX(price) AS max_price").
		Scan(&priceRow).Error; err != nil {
		log.Printf("Failed to fetch price range: %v", err)
		return nil, fmt.Errorf("failed to fetch price range: %w", err)
	}
	facets.PriceRange = resolvePriceRange(priceRow.MinPrice, priceRow.MaxPrice)

	log.Printf("Successfully fetched car filters: %d brands, %d body types", len(facets.Brands), len(facets.BodyTypes))
	return facets, nil
}

type CarDetail struct {
	Car        models.CarResponse               `json:"car"`
	TestDrive  *models.TestDriveBookingResponse `json:"test_drive"`
	Dealership *models.DealershipInfoResponse   `json:"dealership"`
}

// GetCarByID 查詢單一車輛，並組合收藏狀態、使用者最近一筆有效試駕與展示中心資訊
// 車輛不存在時回傳 (nil, nil)，由 handler 轉成 404
func GetCarByID(carID, userID int) (*CarDetail, error) {
	var car models.Car
	if err := database.DB.Preload("Images").First(&car, carID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Car with ID %d not found", carID)
			return nil, nil
		}
		log.Printf("Failed to get car by ID %d: %v", carID, err)
		return nil, fmt.Errorf("failed to get car by ID %d: %w", carID, err)
	}

	wishlisted := false
	if userID > 0 {
		var count int64
		if err := database.DB.Model(&models.UserSavedCar{}).
			Where("user_id = ? AND car_id = ?", userID, carID).
			Count(&count).Error; err != nil {
			log.Printf("Failed to check wishlist for user %d car %d: %v", userID, carID, err)
			return nil, fmt.Errorf("failed to check wishlist: %w", err)
		}
		wishlisted = count > 0
	}

	carResponse, err := car.ToResponse(wishlisted)
	if err != nil {
		log.Printf("Failed to serialize car %d: %v", carID, err)
		return nil, fmt.Errorf("failed to serialize car %d: %w", carID, err)
	}

	detail := &CarDetail{Car: carResponse}

	// 使用者在這台車上最近一筆未被排除的試駕（PENDING/CONFIRMED/COMPLETED）
	if userID > 0 {
		var booking models.TestDriveBooking
		err := database.DB.
			Where("user_id = ? AND car_id = ?", userID, carID).
			Where("status IN ?", []string{
				models.BookingStatusPending,
				models.BookingStatusConfirmed,
				models.BookingStatusCompleted,
			}).
			Order("booking_date DESC, created_at DESC").
			First(&booking).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to get test drive for user %d car %d: %v", userID, carID, err)
			return nil, fmt.Errorf("failed to get test drive booking: %w", err)
		}
		if err == nil {
			resp := booking.ToResponse()
			detail.TestDrive = &resp
		}
	}

	// 展示中心資訊：這裡是純讀取，不存在就維持 null，不做補建
	var dealership models.DealershipInfo
	err = database.DB.First(&dealership, models.DealershipInfoID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to get dealership info: %v", err)
		return nil, fmt.Errorf("failed to get dealership info: %w", err)
	}
	if err == nil {
		hours, err := FetchWorkingHours(dealership.ID)
		if err != nil {
			return nil, err
		}
		resp := dealership.ToResponse(hours)
		detail.Dealership = &resp
	}

	log.Printf("Successfully retrieved car with ID %d", carID)
	return detail, nil
}

// GetFeaturedCars 查詢首頁精選車輛（僅限可售），最新的排前面
func GetFeaturedCars(limit int) ([]models.CarResponse, error) {
	if limit <= 0 {
		limit = 3
	}

	var cars []models.Car
	if err := database.DB.
		Preload("Images").
		Where("featured = ? AND status = ?", true, models.CarStatusAvailable).
		Order("created_at DESC").
		Limit(limit).
		Find(&cars).Error; err != nil {
		log.Printf("Failed to get featured cars: %v", err)
		return nil, fmt.Errorf("failed to get featured cars: %w", err)
	}

	responses, err := carsToResponses(cars, nil)
	if err != nil {
		return nil, err
	}

	log.Printf("Successfully retrieved %d featured cars", len(cars))
	return responses, nil
}

// ValidatePrice 檢查價格字串是否為合法的非負定點小數
func ValidatePrice(price string) error {
	parsed, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return fmt.Errorf("invalid price format: %s", price)
	}
	if parsed < 0 {
		return fmt.Errorf("price cannot be negative: %s", price)
	}
	return nil
}

// CreateCar 新增車輛與圖片（管理員）
func CreateCar(car *models.Car, imageURLs []string) error {
	if err := ValidatePrice(car.Price); err != nil {
		return err
	}
	if car.Status == "" {
		car.Status = models.CarStatusAvailable
	}

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("Panic occurred during car creation: %v", r)
		}
	}()

	if err := tx.Create(car).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to create car: %v", err)
		return fmt.Errorf("failed to create car: %w", err)
	}

	for i, url := range imageURLs {
		image := models.CarImage{CarID: car.CarID, URL: url, Position: i}
		if err := tx.Create(&image).Error; err != nil {
			tx.Rollback()
			log.Printf("Failed to create image for car %d: %v", car.CarID, err)
			return fmt.Errorf("failed to create car image: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Failed to commit transaction for car creation: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Successfully created car with ID %d", car.CarID)
	return nil
}

// UpdateCar 更新車輛欄位（管理員），欄位採白名單映射
func UpdateCar(id int, updatedFields map[string]interface{}) error {
	var car models.Car
	if err := database.DB.First(&car, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Car with ID %d not found", id)
			return fmt.Errorf("car with ID %d not found", id)
		}
		log.Printf("Failed to find car: %v", err)
		return fmt.Errorf("failed to find car with ID %d: %w", id, err)
	}

	mappedFields := make(map[string]interface{})
	for key, value := range updatedFields {
		switch key {
		case "car_id":
			// 防止更新主鍵
			return fmt.Errorf("cannot update car_id")
		case "brand", "model", "mileage", "color", "description", "fuel_type", "transmission", "body_type":
			mappedFields[key] = value
		case "year":
			yearNum, ok := value.(float64)
			if !ok {
				return fmt.Errorf("invalid year type: must be a number")
			}
			mappedFields["year"] = int(yearNum)
		case "seats":
			seatsNum, ok := value.(float64)
			if !ok {
				return fmt.Errorf("invalid seats type: must be a number")
			}
			mappedFields["seats"] = int(seatsNum)
		case "price":
			priceStr, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid price type: must be a string")
			}
			if err := ValidatePrice(priceStr); err != nil {
				return err
			}
			mappedFields["price"] = priceStr
		case "status":
			statusStr, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid status type: must be a string")
			}
			if statusStr != models.CarStatusAvailable && statusStr != models.CarStatusUnavailable && statusStr != models.CarStatusSold {
				return fmt.Errorf("invalid status: must be 'AVAILABLE', 'UNAVAILABLE' or 'SOLD'")
			}
			mappedFields["status"] = statusStr
		case "featured":
			featured, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid featured type: must be a boolean")
			}
			mappedFields["featured"] = featured
		default:
			return fmt.Errorf("invalid field: %s", key)
		}
	}

	if err := database.DB.Model(&car).Updates(mappedFields).Error; err != nil {
		log.Printf("Failed to update car with fields %v: %v", mappedFields, err)
		return fmt.Errorf("failed to update car with ID %d: %w", id, err)
	}

	log.Printf("Successfully updated car with ID %d", id)
	return nil
}

// DeleteCar 刪除車輛及其關聯資料（管理員）
func DeleteCar(id int) error {
	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("Panic occurred during car deletion: %v", r)
		}
	}()

	var car models.Car
	if err := tx.First(&car, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Car with ID %d not found", id)
			return fmt.Errorf("car with ID %d not found", id)
		}
		log.Printf("Failed to find car: %v", err)
		return fmt.Errorf("failed to find car with ID %d: %w", id, err)
	}

	// 刪除相關的圖片、收藏與試駕紀錄
	if err := tx.Where("car_id = ?", id).Delete(&models.CarImage{}).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to delete images for car %d: %v", id, err)
		return fmt.Errorf("failed to delete images for car %d: %w", id, err)
	}
	if err := tx.Where("car_id = ?", id).Delete(&models.UserSavedCar{}).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to delete saved records for car %d: %v", id, err)
		return fmt.Errorf("failed to delete saved records for car %d: %w", id, err)
	}
	if err := tx.Where("car_id = ?", id).Delete(&models.TestDriveBooking{}).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to delete bookings for car %d: %v", id, err)
		return fmt.Errorf("failed to delete bookings for car %d: %w", id, err)
	}

	if err := tx.Delete(&car).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to delete car: %v", err)
		return fmt.Errorf("failed to delete car with ID %d: %w", id, err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Failed to commit transaction for car deletion: %v", err)
		return fmt.Errorf("failed to commit transaction for car deletion: %w", err)
	}

	log.Printf("Successfully deleted car with ID %d", id)
	return nil
}

// GetAdminCars 管理員列表：不限狀態，可用關鍵字過濾
func GetAdminCars(search string) ([]models.CarResponse, error) {
	query := database.DB.Model(&models.Car{}).Preload("Images")
	if search = strings.TrimSpace(search); search != "" {
		pattern := escapeLikePattern(search)
		query = query.Where("LOWER(brand) LIKE ? OR LOWER(model) LIKE ?", pattern, pattern)
	}

	var cars []models.Car
	if err := query.Order("created_at DESC").Find(&cars).Error; err != nil {
		log.Printf("Failed to query admin cars: %v", err)
		return nil, fmt.Errorf("failed to query admin cars: %w", err)
	}

	responses, err := carsToResponses(cars, nil)
	if err != nil {
		return nil, err
	}

	log.Printf("Successfully retrieved %d cars for admin", len(cars))
	return responses, nil
}
