package helper

import (
	"testing"

	"movie_theater/model"

	"github.com/stretchr/testify/assert"
)

func TestSeatLabel(t *testing.T) {
	assert.Equal(t, "A1", SeatLabel(testSeat("A", 1)))
	assert.Equal(t, "E12", SeatLabel(testSeat("E", 12)))
}

func TestCheckSeatConsecutiveness(t *testing.T) {
	t.Run("ghế liền nhau không cảnh báo", func(t *testing.T) {
		warning := CheckSeatConsecutiveness([]model.ScheduleSeat{
			testSeat("A", 3), testSeat("A", 4), testSeat("A", 5),
		})
		assert.Nil(t, warning)
	})

	t.Run("1 ghế không cảnh báo", func(t *testing.T) {
		assert.Nil(t, CheckSeatConsecutiveness([]model.ScheduleSeat{testSeat("A", 7)}))
	})

	t.Run("2 ghế cách nhau 1 ghế trống", func(t *testing.T) {
		warning := CheckSeatConsecutiveness([]model.ScheduleSeat{
			testSeat("A", 1), testSeat("A", 3),
		})
		assert.NotNil(t, warning)
		assert.Equal(t, "Selection of 2 seats leaves a gap in the middle", *warning)
	})

	t.Run("nhiều ghế có khoảng trống", func(t *testing.T) {
		warning := CheckSeatConsecutiveness([]model.ScheduleSeat{
			testSeat("A", 1), testSeat("A", 2), testSeat("A", 5),
		})
		assert.NotNil(t, warning)
		assert.Equal(t, "Selected seats have gaps. Please confirm your selection.", *warning)
	})

	t.Run("kiểm tra từng hàng độc lập", func(t *testing.T) {
		warning := CheckSeatConsecutiveness([]model.ScheduleSeat{
			testSeat("A", 1), testSeat("A", 2),
			testSeat("B", 5), testSeat("B", 6),
		})
		assert.Nil(t, warning)
	})

	t.Run("khoảng trống ở hàng B vẫn bị phát hiện", func(t *testing.T) {
		warning := CheckSeatConsecutiveness([]model.ScheduleSeat{
			testSeat("A", 1), testSeat("A", 2),
			testSeat("B", 1), testSeat("B", 4),
		})
		assert.NotNil(t, warning)
	})

	t.Run("thứ tự input không ảnh hưởng", func(t *testing.T) {
		warning := CheckSeatConsecutiveness([]model.ScheduleSeat{
			testSeat("A", 5), testSeat("A", 3), testSeat("A", 4),
		})
		assert.Nil(t, warning)
	})
}
