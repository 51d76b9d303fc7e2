package model

import (
	"encoding/json"
	"strings"
)

// RoomType describes one bookable room category.
type RoomType struct {
	Name         string `json:"name"`
	NightlyPrice int    `json:"nightly_price"`
	Capacity     int    `json:"capacity"`
}

// HotelProfile carries the static property facts: injected into the answerer
// prompt and the source of truth for room-type slot validation.
type HotelProfile struct {
	Name         string     `json:"name"`
	Location     string     `json:"location"`
	Amenities    []string   `json:"amenities"`
	CheckInTime  string     `json:"check_in_time"`
	CheckOutTime string     `json:"check_out_time"`
	RoomTypes    []RoomType `json:"room_types"`
}

// DefaultHotel returns the Sunset Resort profile.
func DefaultHotel() HotelProfile {
	return HotelProfile{
		Name:         "Sunset Resort",
		Location:     "Goa, India",
		Amenities:    []string{"pool", "spa", "restaurant", "free Wi-Fi"},
		CheckInTime:  "2:00 PM",
		CheckOutTime: "11:00 AM",
		RoomTypes: []RoomType{
			{Name: "standard", NightlyPrice: 5000, Capacity: 2},
			{Name: "deluxe", NightlyPrice: 8000, Capacity: 4},
			{Name: "suite", NightlyPrice: 12000, Capacity: 6},
		},
	}
}

// RoomType looks up a room category by name, case-insensitively.
func (h HotelProfile) RoomType(name string) (RoomType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, rt := range h.RoomTypes {
		if rt.Name == name {
			return rt, true
		}
	}
	return RoomType{}, false
}

// RoomTypeNames returns the room category names in declaration order.
func (h HotelProfile) RoomTypeNames() []string {
	names := make([]string, 0, len(h.RoomTypes))
	for _, rt := range h.RoomTypes {
		names = append(names, rt.Name)
	}
	return names
}

// PromptJSON renders the profile as compact JSON for prompt injection.
func (h HotelProfile) PromptJSON() string {
	b, err := json.Marshal(h)
	if err != nil {
		return "{}"
	}
	return string(b)
}
