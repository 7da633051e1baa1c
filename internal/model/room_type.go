package model

// RoomType identifies one of the hotel's room categories.  Each type
// carries a fixed nightly rate and a fixed number of bookable units.
// Values are stored as uppercase strings in the database and on the wire.
type RoomType string

const (
	RoomStandard     RoomType = "STANDARD"
	RoomDeluxe       RoomType = "DELUXE"
	RoomSuite        RoomType = "SUITE"
	RoomFamily       RoomType = "FAMILY"
	RoomPresidential RoomType = "PRESIDENTIAL"
)

// roomSpec is one row of the static pricing table: nightly rate in whole
// currency units, the number of units of this type the hotel owns, and a
// short guest-facing description.
type roomSpec struct {
	rate        int64
	maxRooms    int
	description string
}

var roomSpecs = map[RoomType]roomSpec{
	RoomStandard:     {rate: 5000, maxRooms: 20, description: "Standard Room with basic amenities"},
	RoomDeluxe:       {rate: 8000, maxRooms: 15, description: "Deluxe Room with ocean view"},
	RoomSuite:        {rate: 12000, maxRooms: 10, description: "Luxury Suite with premium amenities"},
	RoomFamily:       {rate: 15000, maxRooms: 8, description: "Family Room with multiple beds"},
	RoomPresidential: {rate: 25000, maxRooms: 3, description: "Presidential Suite with exclusive services"},
}

// RoomTypes returns all room types in a stable display order.
func RoomTypes() []RoomType {
	return []RoomType{RoomStandard, RoomDeluxe, RoomSuite, RoomFamily, RoomPresidential}
}

// ParseRoomType maps a string to a known RoomType.  The boolean is false
// for unknown values.
func ParseRoomType(s string) (RoomType, bool) {
	t := RoomType(s)
	_, ok := roomSpecs[t]
	return t, ok
}

// Valid reports whether the room type is part of the pricing table.
func (t RoomType) Valid() bool {
	_, ok := roomSpecs[t]
	return ok
}

// RatePerNight returns the nightly rate in whole currency units.  Unknown
// types return 0.
func (t RoomType) RatePerNight() int64 { return roomSpecs[t].rate }

// MaxRooms returns how many units of this type may be booked for the same
// night.  Unknown types return 0, which rejects any booking attempt.
func (t RoomType) MaxRooms() int { return roomSpecs[t].maxRooms }

// Description returns the guest-facing description of the room type.
func (t RoomType) Description() string { return roomSpecs[t].description }
