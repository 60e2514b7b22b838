package services

import (
	"testing"

	"carhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWorkingHours(t *testing.T) {
	hours := DefaultWorkingHours(models.DealershipInfoID)
	require.Len(t, hours, 7)

	byDay := make(map[string]models.WorkingHour)
	for _, hour := range hours {
		assert.Equal(t, models.DealershipInfoID, hour.DealershipID)
		byDay[hour.DayOfWeek] = hour
	}
	require.Len(t, byDay, 7, "each day must appear exactly once")

	// 週一至週五 09:00-18:00
	for _, day := range []string{
		models.DayMonday, models.DayTuesday, models.DayWednesday,
		models.DayThursday, models.DayFriday,
	} {
		hour := byDay[day]
		assert.Equal(t, "09:00", hour.OpenTime, day)
		assert.Equal(t, "18:00", hour.CloseTime, day)
		assert.True(t, hour.IsOpen, day)
	}

	// 週六 10:00-16:00，週日公休
	assert.Equal(t, "10:00", byDay[models.DaySaturday].OpenTime)
	assert.Equal(t, "16:00", byDay[models.DaySaturday].CloseTime)
	assert.True(t, byDay[models.DaySaturday].IsOpen)

	assert.Equal(t, "10:00", byDay[models.DaySunday].OpenTime)
	assert.Equal(t, "16:00", byDay[models.DaySunday].CloseTime)
	assert.False(t, byDay[models.DaySunday].IsOpen)
}

func TestDayOfWeekOrderStartsMonday(t *testing.T) {
	assert.Equal(t, 0, models.DayOfWeekOrder[models.DayMonday])
	assert.Equal(t, 6, models.DayOfWeekOrder[models.DaySunday])
	assert.Len(t, models.DayOfWeekOrder, 7)
}
