package model

type Customer struct {
	DTO
	FullName string `gorm:"not null" json:"fullName"`
	Email    string `gorm:"size:100;uniqueIndex" validate:"required,email" json:"email"`
	Phone    string `gorm:"size:15" json:"phone"`
	Password string `gorm:"not null" json:"-"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

type Promotion struct {
	DTO
	Code     string  `gorm:"size:20;uniqueIndex" json:"code"`
	Discount float64 `json:"discount"` // phần trăm giảm
	IsActive bool    `gorm:"default:true" json:"isActive"`
}
