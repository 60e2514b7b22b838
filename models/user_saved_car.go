package models

import "time"

// UserSavedCar 收藏表：一個使用者對同一台車最多一筆（複合唯一索引）
type UserSavedCar struct {
	ID     int `json:"id" gorm:"primaryKey;autoIncrement;type:INT"`
	UserID int `json:"user_id" gorm:"not null;type:INT;uniqueIndex:idx_user_car"`
	CarID  int `json:"car_id" gorm:"not null;type:INT;uniqueIndex:idx_user_car"`

	User User `json:"-" gorm:"foreignKey:UserID;references:UserID"`
	Car  Car  `json:"-" gorm:"foreignKey:CarID;references:CarID"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName 指定表名
func (UserSavedCar) TableName() string {
	return "user_saved_car"
}
