package events

import (
	"strings"

	"github.com/google/uuid"
)

// UserChannel is the redis channel carrying frames for one user.
func UserChannel(userID uuid.UUID) string {
	return ChannelPrefixUser + userID.String()
}

// UserIDFromChannel extracts the user id from a user channel name.
func UserIDFromChannel(channel string) (uuid.UUID, bool) {
	if !strings.HasPrefix(channel, ChannelPrefixUser) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimPrefix(channel, ChannelPrefixUser))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
