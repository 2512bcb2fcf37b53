package service

import (
	"strings"

	"github.com/hoteldesk/reservation-service/internal/models"
)

// MatchRoomType resolves a human-supplied label against the catalog.
// Case-insensitive exact matches win over substring matches; within either
// tier the candidate with the lowest ID wins. The input slice must be in
// ascending ID order. Returns nil when nothing matches.
func MatchRoomType(types []models.RoomType, label string) *models.RoomType {
	needle := strings.ToLower(strings.TrimSpace(label))
	if needle == "" {
		return nil
	}

	var substring *models.RoomType
	for i := range types {
		name := strings.ToLower(types[i].Name)
		if name == needle {
			return &types[i]
		}
		if substring == nil && strings.Contains(name, needle) {
			substring = &types[i]
		}
	}
	return substring
}
