package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarToResponseParsesPrice(t *testing.T) {
	car := Car{
		CarID:  1,
		Brand:  "Toyota",
		Model:  "Corolla",
		Year:   2022,
		Price:  "20000.50",
		Status: CarStatusAvailable,
	}

	resp, err := car.ToResponse(false)
	require.NoError(t, err)
	assert.Equal(t, 20000.50, resp.Price)
	assert.False(t, resp.Wishlisted)
}

func TestCarToResponseEmptyPriceDefaultsToZero(t *testing.T) {
	car := Car{CarID: 2, Brand: "Honda", Price: ""}

	resp, err := car.ToResponse(true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Price)
	assert.True(t, resp.Wishlisted)
}

func TestCarToResponseRejectsMalformedPrice(t *testing.T) {
	car := Car{CarID: 3, Brand: "Honda", Price: "not-a-number"}

	_, err := car.ToResponse(false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid price")
}

func TestCarToResponseFormatsTimestamps(t *testing.T) {
	created := time.Date(2026, 5, 17, 9, 30, 0, 0, time.UTC)
	car := Car{CarID: 4, Price: "100", CreatedAt: created, UpdatedAt: created}

	resp, err := car.ToResponse(false)
	require.NoError(t, err)
	assert.Equal(t, "2026-05-17 09:30:00", resp.CreatedAt)
	assert.Equal(t, "2026-05-17 09:30:00", resp.UpdatedAt)
}

func TestCarToResponseOrdersImagesByPosition(t *testing.T) {
	car := Car{
		CarID: 5,
		Price: "100",
		Images: []CarImage{
			{URL: "c.jpg", Position: 2},
			{URL: "a.jpg", Position: 0},
			{URL: "b.jpg", Position: 1},
		},
	}

	resp, err := car.ToResponse(false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, resp.Images)
}

func TestBookingToResponseFormatsDate(t *testing.T) {
	booking := TestDriveBooking{
		BookingID:   1,
		CarID:       5,
		UserID:      7,
		BookingDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      BookingStatusPending,
	}

	resp := booking.ToResponse()
	assert.Equal(t, "2026-09-01", resp.BookingDate)
	assert.Equal(t, BookingStatusPending, resp.Status)
}
