package helper

import (
	"fmt"
	"sort"

	"movie_theater/model"
)

// SeatLabel ví dụ "A1", "E8"
func SeatLabel(seat model.ScheduleSeat) string {
	return fmt.Sprintf("%s%d", seat.SeatRow, seat.SeatColumn)
}

// CheckSeatConsecutiveness kiểm tra cách chọn ghế có để lại ghế lẻ/khoảng trống không.
// Chỉ cảnh báo, không bao giờ chặn đặt vé. Trả về nil nếu lựa chọn ổn.
func CheckSeatConsecutiveness(seats []model.ScheduleSeat) *string {
	seatsByRow := make(map[string][]model.ScheduleSeat)
	rows := []string{}
	for _, seat := range seats {
		if _, ok := seatsByRow[seat.SeatRow]; !ok {
			rows = append(rows, seat.SeatRow)
		}
		seatsByRow[seat.SeatRow] = append(seatsByRow[seat.SeatRow], seat)
	}
	sort.Strings(rows)

	for _, row := range rows {
		rowSeats := seatsByRow[row]
		sort.Slice(rowSeats, func(i, j int) bool {
			return rowSeats[i].SeatColumn < rowSeats[j].SeatColumn
		})

		if len(rowSeats) == 2 {
			minCol := rowSeats[0].SeatColumn
			maxCol := rowSeats[1].SeatColumn
			if maxCol-minCol > 1 { // ví dụ chọn 1 và 3
				msg := "Selection of 2 seats leaves a gap in the middle"
				return &msg
			}
		}

		if len(rowSeats) > 1 {
			minCol := rowSeats[0].SeatColumn
			maxCol := rowSeats[len(rowSeats)-1].SeatColumn

			selected := make(map[int]bool, len(rowSeats))
			for _, s := range rowSeats {
				selected[s.SeatColumn] = true
			}
			for col := minCol; col <= maxCol; col++ {
				if !selected[col] {
					msg := "Selected seats have gaps. Please confirm your selection."
					return &msg
				}
			}

			for i := 1; i < len(rowSeats)-1; i++ {
				currentCol := rowSeats[i].SeatColumn
				prevCol := rowSeats[i-1].SeatColumn
				nextCol := rowSeats[i+1].SeatColumn
				if currentCol != prevCol+1 && currentCol != nextCol-1 {
					msg := "Selection leaves an isolated seat. Please confirm your selection."
					return &msg
				}
			}
		}
	}
	return nil
}
