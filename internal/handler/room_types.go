package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oceanview/hotel-reservation/internal/model"
)

type roomTypeInfo struct {
	RoomType     string `json:"room_type"`
	RatePerNight int64  `json:"rate_per_night"`
	MaxRooms     int    `json:"max_rooms"`
	Description  string `json:"description"`
}

// RoomTypes handles GET /v1/room-types.  It lists the pricing table so
// the customer portal can show rates and capacities without
// authentication.  The response is static per build and sits behind the
// Redis response cache.
func RoomTypes(c echo.Context) error {
	out := make([]roomTypeInfo, 0, len(model.RoomTypes()))
	for _, t := range model.RoomTypes() {
		out = append(out, roomTypeInfo{
			RoomType:     string(t),
			RatePerNight: t.RatePerNight(),
			MaxRooms:     t.MaxRooms(),
			Description:  t.Description(),
		})
	}
	return c.JSON(http.StatusOK, out)
}
