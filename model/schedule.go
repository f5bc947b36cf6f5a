package model

import "time"

type Schedule struct {
	DTO
	MovieId        uint      `json:"movieId"`
	RoomId         uint      `json:"roomId"`
	StartTime      time.Time `validate:"required" json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Price          float64   `gorm:"not null" json:"price"` // giá vé cơ bản
	TotalSeats     int       `gorm:"not null" json:"totalSeats"`
	AvailableSeats int       `gorm:"not null" json:"availableSeats"`
	Movie          Movie     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:MovieId" json:"Movie"`
	Room           Room      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:RoomId" json:"Room"`
}

type ScheduleSeat struct {
	DTO
	ScheduleId uint     `gorm:"index:idx_schedule_seat,unique" json:"scheduleId"`
	SeatRow    string   `gorm:"size:5;index:idx_schedule_seat,unique" json:"seatRow"`
	SeatColumn int      `gorm:"index:idx_schedule_seat,unique" json:"seatColumn"`
	SeatType   string   `gorm:"size:10;default:'NORMAL'" json:"seatType"` // NORMAL | VIP
	Status     string   `gorm:"size:10;default:'AVAILABLE'" json:"status"`
	Schedule   Schedule `gorm:"foreignKey:ScheduleId" json:"-"`
}

type FilterScheduleInput struct {
	Pagination
	MovieId uint `json:"movieId" query:"movieId" validate:"omitempty,gt=0"`
}
