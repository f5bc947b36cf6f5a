package helper

import (
	"movie_theater/constants"
	"movie_theater/model"
)

// CalculateSeatPrice tính giá vé theo loại ghế: ghế VIP cộng phụ thu
func CalculateSeatPrice(schedule model.Schedule, seat model.ScheduleSeat) float64 {
	if seat.SeatType == constants.SeatTypeVIP {
		return schedule.Price + constants.VIPSurcharge
	}
	return schedule.Price
}

// CalculateTotalAmount tổng tiền cho 1 lựa chọn ghế
func CalculateTotalAmount(schedule model.Schedule, seats []model.ScheduleSeat) float64 {
	total := 0.0
	for _, seat := range seats {
		total += CalculateSeatPrice(schedule, seat)
	}
	return total
}
