package services

import (
	"errors"
	"fmt"
	"log"

	"carhub/database"
	"carhub/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrCarNotFound 收藏或預約時引用的車輛不存在
var ErrCarNotFound = errors.New("car not found")

// ToggleSavedCar 收藏切換：已收藏則取消，未收藏則加入，回傳切換後的狀態
// 整個判斷與寫入包在同一個事務裡；併發下撞到唯一索引（1062）時視為已收藏
func ToggleSavedCar(userID, carID int) (bool, error) {
	saved := false

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var car models.Car
		if err := tx.First(&car, carID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("Car with ID %d not found", carID)
				return ErrCarNotFound
			}
			log.Printf("Failed to find car %d: %v", carID, err)
			return fmt.Errorf("failed to find car %d: %w", carID, err)
		}

		var record models.UserSavedCar
		err := tx.Where("user_id = ? AND car_id = ?", userID, carID).First(&record).Error
		if err == nil {
			// 已收藏：刪除
			if err := tx.Delete(&record).Error; err != nil {
				log.Printf("Failed to delete saved car for user %d car %d: %v", userID, carID, err)
				return fmt.Errorf("failed to delete saved car: %w", err)
			}
			saved = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to check saved car for user %d car %d: %v", userID, carID, err)
			return fmt.Errorf("failed to check saved car: %w", err)
		}

		// 未收藏：新增
		record = models.UserSavedCar{UserID: userID, CarID: carID}
		if err := tx.Create(&record).Error; err != nil {
			if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
				// 兩個併發切換同時插入：唯一索引擋下了第二筆，視為已收藏即可
				log.Printf("Duplicate saved car for user %d car %d, treating as saved", userID, carID)
				saved = true
				return nil
			}
			log.Printf("Failed to create saved car for user %d car %d: %v", userID, carID, err)
			return fmt.Errorf("failed to create saved car: %w", err)
		}
		saved = true
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Printf("Successfully toggled saved car for user %d car %d: saved=%v", userID, carID, saved)
	return saved, nil
}

// GetSavedCars 查詢使用者收藏的車輛，最新收藏的排前面
func GetSavedCars(userID int) ([]models.CarResponse, error) {
	var records []models.UserSavedCar
	if err := database.DB.
		Preload("Car").
		Preload("Car.Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		log.Printf("Failed to query saved cars for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to query saved cars: %w", err)
	}

	responses := make([]models.CarResponse, len(records))
	for i := range records {
		resp, err := records[i].Car.ToResponse(true)
		if err != nil {
			log.Printf("Failed to serialize saved car %d: %v", records[i].CarID, err)
			return nil, fmt.Errorf("failed to serialize saved car %d: %w", records[i].CarID, err)
		}
		responses[i] = resp
	}

	log.Printf("Successfully retrieved %d saved cars for user %d", len(records), userID)
	return responses, nil
}
