package models

import "time"

// 使用者角色
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	UserID   int    `json:"user_id" gorm:"primaryKey;autoIncrement;type:INT"`
	Name     string `json:"name" gorm:"type:varchar(50);not null" binding:"required,max=50"`
	Email    string `json:"email" gorm:"type:varchar(100);not null;uniqueIndex" binding:"required,email"`
	Phone    string `json:"phone" gorm:"type:varchar(20)"`
	Password string `json:"password" gorm:"type:varchar(100);not null" binding:"required"`
	Role     string `json:"role" gorm:"type:enum('USER','ADMIN');default:'USER'"`

	SavedCars []UserSavedCar     `json:"-" gorm:"foreignKey:UserID;references:UserID"`
	Bookings  []TestDriveBooking `json:"-" gorm:"foreignKey:UserID;references:UserID"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "user"
}

// UserResponse 不含密碼的回應結構
type UserResponse struct {
	UserID    int    `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
