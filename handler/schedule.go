package handler

import (
	"errors"

	"movie_theater/database"
	"movie_theater/model"
	"movie_theater/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/v1/movies - danh sách phim đang chiếu (read-only cho trang đặt vé)
func GetMovies(c *fiber.Ctx) error {
	var movies []model.Movie
	if err := database.DB.Where("status = ?", "SHOWING").Order("title").Find(&movies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải danh sách phim", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movies)
}

// GET /api/v1/schedules?movieId=&limit=&page=
func GetSchedules(c *fiber.Ctx) error {
	var input model.FilterScheduleInput
	if err := c.QueryParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Tham số không hợp lệ", err)
	}

	query := database.DB.Model(&model.Schedule{})
	if input.MovieId > 0 {
		query = query.Where("movie_id = ?", input.MovieId)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải suất chiếu", err)
	}

	var schedules []model.Schedule
	if err := utils.ApplyPagination(query, input.Limit, input.Page).
		Preload("Movie").Preload("Room").Preload("Room.Theater").
		Order("start_time").
		Find(&schedules).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải suất chiếu", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       schedules,
		Limit:      input.Limit,
		Page:       input.Page,
		TotalCount: totalCount,
	})
}

// GET /api/v1/schedules/:scheduleId
func GetScheduleById(c *fiber.Ctx) error {
	scheduleId, err := c.ParamsInt("scheduleId")
	if err != nil || scheduleId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mã suất chiếu không hợp lệ", err)
	}

	var schedule model.Schedule
	if err := database.DB.Preload("Movie").Preload("Room").First(&schedule, scheduleId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.RespondError(c, utils.NotFoundError("Schedule not found", err))
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải suất chiếu", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, schedule)
}

// GET /api/v1/schedules/:scheduleId/seats - sơ đồ ghế nhóm theo hàng
func GetScheduleSeats(c *fiber.Ctx) error {
	scheduleId, err := c.ParamsInt("scheduleId")
	if err != nil || scheduleId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mã suất chiếu không hợp lệ", err)
	}

	var schedule model.Schedule
	if err := database.DB.First(&schedule, scheduleId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.RespondError(c, utils.NotFoundError("Schedule not found", err))
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải suất chiếu", err)
	}

	seats, err := FetchScheduleSeats(schedule.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải sơ đồ ghế", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"scheduleId":     schedule.ID,
		"price":          schedule.Price,
		"totalSeats":     schedule.TotalSeats,
		"availableSeats": schedule.AvailableSeats,
		"seats":          seats,
	})
}
