package database

import (
	"fmt"
	"log"
	"time"

	"movie_theater/constants"
	"movie_theater/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04", dateStr)
	return t
}

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cn"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456cn"
	}

	customers := []model.Customer{
		{FullName: "Nguyễn Văn Khách", Email: "khach@example.com", Phone: "0901234567", Password: HashPassword},
	}
	for _, customer := range customers {
		if err := db.Where(model.Customer{Email: customer.Email}).FirstOrCreate(&customer).Error; err != nil {
			log.Println("failed to seed data for customer:", customer.Email, "error:", err)
		}
	}

	var theater model.Theater
	if err := db.Where(model.Theater{Name: "CinemaPro Quận 1"}).
		Attrs(model.Theater{Address: "123 Lê Lợi, Quận 1, TP.HCM"}).
		FirstOrCreate(&theater).Error; err != nil {
		log.Println("failed to seed theater:", err)
		return
	}

	var room model.Room
	if err := db.Where(model.Room{Name: "P01", TheaterId: theater.ID}).FirstOrCreate(&room).Error; err != nil {
		log.Println("failed to seed room:", err)
		return
	}

	movies := []model.Movie{
		{Title: "Mai", Duration: 131},
		{Title: "Đào, Phở và Piano", Duration: 100},
	}
	for i := range movies {
		movies[i].Slug = slug.Make(movies[i].Title)
		if err := db.Where(model.Movie{Slug: movies[i].Slug}).FirstOrCreate(&movies[i]).Error; err != nil {
			log.Println("failed to seed movie:", movies[i].Title, "error:", err)
		}
	}

	promotions := []model.Promotion{
		{Code: "WELCOME10", Discount: 10},
	}
	for _, promo := range promotions {
		if err := db.Where(model.Promotion{Code: promo.Code}).FirstOrCreate(&promo).Error; err != nil {
			log.Println("failed to seed promotion:", promo.Code, "error:", err)
		}
	}

	// Mỗi phim 1 suất chiếu mẫu kèm lưới ghế 5x8 (hàng E là VIP)
	var count int64
	db.Model(&model.Schedule{}).Count(&count)
	if count > 0 {
		return
	}
	for i, movie := range movies {
		start := parseDate(fmt.Sprintf("2026-09-10 %02d:00", 18+i*3))
		schedule := model.Schedule{
			MovieId:        movie.ID,
			RoomId:         room.ID,
			StartTime:      start,
			EndTime:        start.Add(time.Duration(movie.Duration) * time.Minute),
			Price:          100000,
			TotalSeats:     40,
			AvailableSeats: 40,
		}
		if err := db.Create(&schedule).Error; err != nil {
			log.Println("failed to seed schedule:", err)
			continue
		}

		var seats []model.ScheduleSeat
		for _, row := range []string{"A", "B", "C", "D", "E"} {
			seatType := constants.SeatTypeNormal
			if row == "E" {
				seatType = constants.SeatTypeVIP
			}
			for col := 1; col <= 8; col++ {
				seats = append(seats, model.ScheduleSeat{
					ScheduleId: schedule.ID,
					SeatRow:    row,
					SeatColumn: col,
					SeatType:   seatType,
					Status:     constants.SeatAvailable,
				})
			}
		}
		if err := db.Create(&seats).Error; err != nil {
			log.Println("failed to seed schedule seats:", err)
		}
	}
}
