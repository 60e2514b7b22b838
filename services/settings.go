package services

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"carhub/database"
	"carhub/models"

	"gorm.io/gorm"
)

// DefaultWorkingHours 預設營業時間：週一至週五 09:00-18:00、週六 10:00-16:00、週日公休
func DefaultWorkingHours(dealershipID int) []models.WorkingHour {
	weekdays := []string{
		models.DayMonday, models.DayTuesday, models.DayWednesday,
		models.DayThursday, models.DayFriday,
	}

	hours := make([]models.WorkingHour, 0, 7)
	for _, day := range weekdays {
		hours = append(hours, models.WorkingHour{
			DealershipID: dealershipID,
			DayOfWeek:    day,
			OpenTime:     "09:00",
			CloseTime:    "18:00",
			IsOpen:       true,
		})
	}
	hours = append(hours, models.WorkingHour{
		DealershipID: dealershipID,
		DayOfWeek:    models.DaySaturday,
		OpenTime:     "10:00",
		CloseTime:    "16:00",
		IsOpen:       true,
	})
	hours = append(hours, models.WorkingHour{
		DealershipID: dealershipID,
		DayOfWeek:    models.DaySunday,
		OpenTime:     "10:00",
		CloseTime:    "16:00",
		IsOpen:       false,
	})
	return hours
}

// FetchWorkingHours 查詢營業時間並依星期排序（週一開始）
func FetchWorkingHours(dealershipID int) ([]models.WorkingHour, error) {
	var hours []models.WorkingHour
	if err := database.DB.
		Where("dealership_id = ?", dealershipID).
		Find(&hours).Error; err != nil {
		log.Printf("Failed to fetch working hours for dealership %d: %v", dealershipID, err)
		return nil, fmt.Errorf("failed to fetch working hours: %w", err)
	}

	sort.Slice(hours, func(i, j int) bool {
		return models.DayOfWeekOrder[hours[i].DayOfWeek] < models.DayOfWeekOrder[hours[j].DayOfWeek]
	})
	return hours, nil
}

// GetDealershipInfo 查詢展示中心設定（固定 id=1）
// 第一次讀取且不存在時，在同一事務內補建預設資料與七筆營業時間
func GetDealershipInfo() (*models.DealershipInfoResponse, error) {
	var dealership models.DealershipInfo
	err := database.DB.First(&dealership, models.DealershipInfoID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to get dealership info: %v", err)
		return nil, fmt.Errorf("failed to get dealership info: %w", err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		dealership = models.DealershipInfo{
			ID:   models.DealershipInfoID,
			Name: "CarHub Motors",
		}
		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&dealership).Error; err != nil {
				return fmt.Errorf("failed to create dealership info: %w", err)
			}
			for _, hour := range DefaultWorkingHours(dealership.ID) {
				if err := tx.Create(&hour).Error; err != nil {
					return fmt.Errorf("failed to create default working hour %s: %w", hour.DayOfWeek, err)
				}
			}
			return nil
		})
		if txErr != nil {
			log.Printf("Failed to initialize dealership info: %v", txErr)
			return nil, txErr
		}
		log.Printf("Created default dealership info with ID %d", dealership.ID)
	}

	hours, err := FetchWorkingHours(dealership.ID)
	if err != nil {
		return nil, err
	}

	resp := dealership.ToResponse(hours)
	log.Printf("Successfully retrieved dealership info with %d working hours", len(hours))
	return &resp, nil
}

// SaveWorkingHours 整批覆寫營業時間：刪除與新增包在同一事務，避免讀到空檔
func SaveWorkingHours(hours []models.WorkingHour) error {
	seen := make(map[string]bool)
	for i := range hours {
		hours[i].ID = 0
		hours[i].DealershipID = models.DealershipInfoID
		if _, ok := models.DayOfWeekOrder[hours[i].DayOfWeek]; !ok {
			return fmt.Errorf("invalid day_of_week: %s", hours[i].DayOfWeek)
		}
		if seen[hours[i].DayOfWeek] {
			return fmt.Errorf("duplicate day_of_week: %s", hours[i].DayOfWeek)
		}
		seen[hours[i].DayOfWeek] = true
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dealership_id = ?", models.DealershipInfoID).
			Delete(&models.WorkingHour{}).Error; err != nil {
			return fmt.Errorf("failed to delete working hours: %w", err)
		}
		for i := range hours {
			if err := tx.Create(&hours[i]).Error; err != nil {
				return fmt.Errorf("failed to insert working hour %s: %w", hours[i].DayOfWeek, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to save working hours: %v", err)
		return err
	}

	log.Printf("Successfully saved %d working hours", len(hours))
	return nil
}

// UpdateDealershipInfo 更新展示中心基本資料（管理員）
func UpdateDealershipInfo(updatedFields map[string]interface{}) error {
	var dealership models.DealershipInfo
	if err := database.DB.First(&dealership, models.DealershipInfoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("dealership info not found")
		}
		log.Printf("Failed to find dealership info: %v", err)
		return fmt.Errorf("failed to find dealership info: %w", err)
	}

	mappedFields := make(map[string]interface{})
	for key, value := range updatedFields {
		switch key {
		case "name", "address", "phone", "email":
			mappedFields[key] = value
		default:
			return fmt.Errorf("invalid field: %s", key)
		}
	}

	if err := database.DB.Model(&dealership).Updates(mappedFields).Error; err != nil {
		log.Printf("Failed to update dealership info: %v", err)
		return fmt.Errorf("failed to update dealership info: %w", err)
	}

	log.Printf("Successfully updated dealership info")
	return nil
}

// GetUsers 查詢所有使用者（管理員）
func GetUsers() ([]models.UserResponse, error) {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("Failed to query all users: %v", err)
		return nil, fmt.Errorf("failed to query all users: %w", err)
	}

	responses := make([]models.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}

	log.Printf("Successfully retrieved %d users", len(users))
	return responses, nil
}

// UpdateUserRole 更新使用者角色（管理員）
func UpdateUserRole(userID int, role string) error {
	if role != models.RoleUser && role != models.RoleAdmin {
		return fmt.Errorf("invalid role: must be 'USER' or 'ADMIN'")
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("User with ID %d not found", userID)
			return fmt.Errorf("user with ID %d not found", userID)
		}
		log.Printf("Failed to find user %d: %v", userID, err)
		return fmt.Errorf("failed to find user %d: %w", userID, err)
	}

	if err := database.DB.Model(&user).Update("role", role).Error; err != nil {
		log.Printf("Failed to update role for user %d: %v", userID, err)
		return fmt.Errorf("failed to update role for user %d: %w", userID, err)
	}

	log.Printf("Successfully updated role for user %d to %s", userID, role)
	return nil
}
