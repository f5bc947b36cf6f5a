package model

import "time"

type Booking struct {
	DTO
	BookingCode    string       `gorm:"size:50;uniqueIndex" json:"bookingCode"`
	CustomerId     uint         `gorm:"index" json:"customerId"`
	ScheduleId     uint         `gorm:"index" json:"scheduleId"`
	ScheduleSeatId uint         `gorm:"index" json:"scheduleSeatId"`
	BookingDate    time.Time    `json:"bookingDate"`
	Status         string       `gorm:"size:15;default:'PENDING';index" json:"status"`
	PromotionId    *uint        `json:"promotionId,omitempty"`
	Price          float64      `json:"price"`
	OrderCode      *string      `gorm:"size:50;index" json:"orderCode,omitempty"`
	PaymentMethod  *string      `gorm:"size:10" json:"paymentMethod,omitempty"`
	PaidAt         *time.Time   `json:"paidAt,omitempty"`
	ExpiresAt      *time.Time   `gorm:"index" json:"expiresAt,omitempty"`
	Customer       Customer     `gorm:"foreignKey:CustomerId" json:"-"`
	Schedule       Schedule     `gorm:"foreignKey:ScheduleId" json:"-"`
	ScheduleSeat   ScheduleSeat `gorm:"foreignKey:ScheduleSeatId" json:"-"`
}

type CreateBookingInput struct {
	ScheduleId  uint   `json:"scheduleId" validate:"required,gt=0"`
	SeatIds     []uint `json:"seatIds" validate:"required,min=1,unique,dive,gt=0"`
	PromotionId *uint  `json:"promotionId" validate:"omitempty,gt=0"`
}

type BookingResponse struct {
	BookingCode    string     `json:"bookingCode"`
	CustomerId     uint       `json:"customerId"`
	ScheduleId     uint       `json:"scheduleId"`
	ScheduleSeatId uint       `json:"scheduleSeatId"`
	SeatLabel      string     `json:"seatLabel"`
	BookingDate    time.Time  `json:"bookingDate"`
	Status         string     `json:"status"`
	PromotionId    *uint      `json:"promotionId,omitempty"`
	Price          float64    `json:"price"`
	OrderCode      *string    `json:"orderCode,omitempty"`
	PaymentMethod  *string    `json:"paymentMethod,omitempty"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
}
