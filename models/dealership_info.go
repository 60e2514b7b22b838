package models

import "time"

// DealershipInfoID 固定使用 id=1 的單一展示中心設定，避免「取第一筆」的順序歧義
const DealershipInfoID = 1

// DealershipInfo 展示中心資訊表：整個系統只有一筆（id=1）
type DealershipInfo struct {
	ID      int    `json:"id" gorm:"primaryKey;type:INT"`
	Name    string `json:"name" gorm:"type:varchar(100);not null"`
	Address string `json:"address" gorm:"type:varchar(255)"`
	Phone   string `json:"phone" gorm:"type:varchar(20)"`
	Email   string `json:"email" gorm:"type:varchar(100)"`

	WorkingHours []WorkingHour `json:"working_hours" gorm:"foreignKey:DealershipID;references:ID"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName 指定表名
func (DealershipInfo) TableName() string {
	return "dealership_info"
}

type DealershipInfoResponse struct {
	ID           int                   `json:"id"`
	Name         string                `json:"name"`
	Address      string                `json:"address,omitempty"`
	Phone        string                `json:"phone,omitempty"`
	Email        string                `json:"email,omitempty"`
	WorkingHours []WorkingHourResponse `json:"working_hours"`
}

func (d *DealershipInfo) ToResponse(hours []WorkingHour) DealershipInfoResponse {
	hourResponses := make([]WorkingHourResponse, len(hours))
	for i, hour := range hours {
		hourResponses[i] = hour.ToResponse()
	}

	return DealershipInfoResponse{
		ID:           d.ID,
		Name:         d.Name,
		Address:      d.Address,
		Phone:        d.Phone,
		Email:        d.Email,
		WorkingHours: hourResponses,
	}
}
