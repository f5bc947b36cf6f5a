package model

type Movie struct {
	DTO
	Title     string  `gorm:"not null" validate:"required" json:"title"`
	Slug      string  `gorm:"size:120;uniqueIndex" json:"slug"`
	Duration  int     `json:"duration"` // phút
	PosterUrl *string `json:"posterUrl,omitempty"`
	Status    string  `gorm:"default:'SHOWING'" json:"status"`
}

type Theater struct {
	DTO
	Name    string `gorm:"not null" validate:"required" json:"name"`
	Address string `json:"address"`
	Rooms   []Room `gorm:"foreignKey:TheaterId" json:"-"`
}

type Room struct {
	DTO
	Name      string  `gorm:"not null" validate:"required" json:"name"`
	TheaterId uint    `json:"theaterId"`
	Theater   Theater `gorm:"foreignKey:TheaterId" json:"-"`
}
