package models

// 星期列舉（排序用索引見 DayOfWeekOrder）
const (
	DayMonday    = "MONDAY"
	DayTuesday   = "TUESDAY"
	DayWednesday = "WEDNESDAY"
	DayThursday  = "THURSDAY"
	DayFriday    = "FRIDAY"
	DaySaturday  = "SATURDAY"
	DaySunday    = "SUNDAY"
)

// DayOfWeekOrder 星期排序：星期一為一週的開始
var DayOfWeekOrder = map[string]int{
	DayMonday:    0,
	DayTuesday:   1,
	DayWednesday: 2,
	DayThursday:  3,
	DayFriday:    4,
	DaySaturday:  5,
	DaySunday:    6,
}

// WorkingHour 營業時間表：每個展示中心每個星期最多一筆（複合唯一索引）
type WorkingHour struct {
	ID           int    `json:"id" gorm:"primaryKey;autoIncrement;type:INT"`
	DealershipID int    `json:"dealership_id" gorm:"not null;type:INT;uniqueIndex:idx_dealership_day"`
	DayOfWeek    string `json:"day_of_week" gorm:"type:enum('MONDAY','TUESDAY','WEDNESDAY','THURSDAY','FRIDAY','SATURDAY','SUNDAY');not null;uniqueIndex:idx_dealership_day" binding:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	OpenTime     string `json:"open_time" gorm:"type:varchar(5);not null" binding:"required"`  // HH:MM
	CloseTime    string `json:"close_time" gorm:"type:varchar(5);not null" binding:"required"` // HH:MM
	IsOpen       bool   `json:"is_open" gorm:"type:tinyint(1);default:1"`
}

// TableName 指定表名
func (WorkingHour) TableName() string {
	return "working_hour"
}

type WorkingHourResponse struct {
	DayOfWeek string `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsOpen    bool   `json:"is_open"`
}

func (w *WorkingHour) ToResponse() WorkingHourResponse {
	return WorkingHourResponse{
		DayOfWeek: w.DayOfWeek,
		OpenTime:  w.OpenTime,
		CloseTime: w.CloseTime,
		IsOpen:    w.IsOpen,
	}
}
