package events

// Realtime event names pushed to clients
const (
	EventNewMessage = "newMessage"
	EventReply      = "reply"
)

// Redis channel prefixes
const (
	ChannelPrefixUser  = "channel:user:"
	ChannelPatternUser = ChannelPrefixUser + "*"
)
