package models

// CarImage 車輛圖片表：一台車多張圖，position 決定顯示順序
type CarImage struct {
	ID       int    `json:"id" gorm:"primaryKey;autoIncrement;type:INT"`
	CarID    int    `json:"car_id" gorm:"index;not null;type:INT"`
	URL      string `json:"url" gorm:"type:varchar(500);not null" binding:"required,max=500"`
	Position int    `json:"position" gorm:"type:INT;not null;default:0" binding:"gte=0"`
}

// TableName 指定表名
func (CarImage) TableName() string {
	return "car_image"
}
