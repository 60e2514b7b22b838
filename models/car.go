package models

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// 車輛狀態
const (
	CarStatusAvailable   = "AVAILABLE"
	CarStatusUnavailable = "UNAVAILABLE"
	CarStatusSold        = "SOLD"
)

// Car 車輛表：展售中的車輛清單
type Car struct {
	CarID        int    `json:"car_id" gorm:"primaryKey;autoIncrement;type:INT"`
	Brand        string `json:"brand" gorm:"type:varchar(50);not null;index" binding:"required,max=50"`
	Model        string `json:"model" gorm:"type:varchar(50);not null" binding:"required,max=50"`
	Year         int    `json:"year" gorm:"type:INT;not null" binding:"required,gte=1900"`
	Price        string `json:"price" gorm:"type:decimal(12,2);not null" binding:"required"` // 定點小數字串，序列化時轉為數字
	Mileage      string `json:"mileage" gorm:"type:varchar(50)" binding:"omitempty,max=50"`
	Color        string `json:"color" gorm:"type:varchar(20)" binding:"omitempty,max=20"`
	Description  string `json:"description" gorm:"type:text"`
	FuelType     string `json:"fuel_type" gorm:"type:varchar(20);not null" binding:"required,max=20"`
	Transmission string `json:"transmission" gorm:"type:varchar(20);not null" binding:"required,max=20"`
	BodyType     string `json:"body_type" gorm:"type:varchar(20);not null" binding:"required,max=20"`
	Seats        *int   `json:"seats,omitempty" gorm:"type:INT" binding:"omitempty,gt=0"`
	Status       string `json:"status" gorm:"type:enum('AVAILABLE','UNAVAILABLE','SOLD');default:'AVAILABLE'" binding:"omitempty,oneof=AVAILABLE UNAVAILABLE SOLD"`
	Featured     bool   `json:"featured" gorm:"type:tinyint(1);default:0"`

	// 關聯：車輛圖片（依 position 排序）
	Images []CarImage `json:"images" gorm:"foreignKey:CarID;references:CarID"`

	// 時間欄位（GORM 自動管理）
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName 指定表名
func (Car) TableName() string {
	return "car"
}

// 給前端用的回應結構：price 轉為數字、時間轉為字串
type CarResponse struct {
	CarID        int      `json:"car_id"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Price        float64  `json:"price"`
	Mileage      string   `json:"mileage,omitempty"`
	Color        string   `json:"color,omitempty"`
	Description  string   `json:"description,omitempty"`
	FuelType     string   `json:"fuel_type"`
	Transmission string   `json:"transmission"`
	BodyType     string   `json:"body_type"`
	Seats        *int     `json:"seats,omitempty"`
	Status       string   `json:"status"`
	Featured     bool     `json:"featured"`
	Wishlisted   bool     `json:"wishlisted"`
	Images       []string `json:"images"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// ToResponse 將 Car 轉換為 CarResponse
// price 為空字串時視為 0，格式錯誤時回傳錯誤（不靜默轉成 0）
func (c *Car) ToResponse(wishlisted bool) (CarResponse, error) {
	price := 0.0
	if c.Price != "" {
		parsed, err := strconv.ParseFloat(c.Price, 64)
		if err != nil {
			return CarResponse{}, fmt.Errorf("invalid price %q for car %d: %w", c.Price, c.CarID, err)
		}
		price = parsed
	}

	// 圖片依 position 排序後只輸出 URL
	images := make([]CarImage, len(c.Images))
	copy(images, c.Images)
	sort.Slice(images, func(i, j int) bool {
		return images[i].Position < images[j].Position
	})
	urls := make([]string, len(images))
	for i, img := range images {
		urls[i] = img.URL
	}

	return CarResponse{
		CarID:        c.CarID,
		Brand:        c.Brand,
		Model:        c.Model,
		Year:         c.Year,
		Price:        price,
		Mileage:      c.Mileage,
		Color:        c.Color,
		Description:  c.Description,
		FuelType:     c.FuelType,
		Transmission: c.Transmission,
		BodyType:     c.BodyType,
		Seats:        c.Seats,
		Status:       c.Status,
		Featured:     c.Featured,
		Wishlisted:   wishlisted,
		Images:       urls,
		CreatedAt:    c.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    c.UpdatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
