package helper

import (
	"testing"

	"movie_theater/constants"
	"movie_theater/model"

	"github.com/stretchr/testify/assert"
)

func TestCalculateSeatPrice(t *testing.T) {
	schedule := model.Schedule{Price: 100000}

	normal := model.ScheduleSeat{SeatType: constants.SeatTypeNormal}
	vip := model.ScheduleSeat{SeatType: constants.SeatTypeVIP}

	assert.Equal(t, 100000.0, CalculateSeatPrice(schedule, normal))
	assert.Equal(t, 120000.0, CalculateSeatPrice(schedule, vip))
}

func TestCalculateTotalAmount(t *testing.T) {
	schedule := model.Schedule{Price: 100000}
	seats := []model.ScheduleSeat{
		{SeatType: constants.SeatTypeNormal},
		{SeatType: constants.SeatTypeVIP},
		{SeatType: constants.SeatTypeNormal},
	}

	assert.Equal(t, 320000.0, CalculateTotalAmount(schedule, seats))
	assert.Equal(t, 0.0, CalculateTotalAmount(schedule, nil))
}
