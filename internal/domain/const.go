package domain

import "strings"

const (
	RequesterUsernameCtxKey = "sl-requesterUsername"
)

const (
	RequesterUsernameHeader = "X-Username"
)

const (
	AccessRegular = "Regular"
	AccessAdmin   = "Admin"
)

const (
	ModeLead      = "Lead"
	ModeTopRope   = "Top Rope"
	ModeAutoBelay = "Auto-belay"
)

// ResultSent marks an attempt that finished the route.
const ResultSent = "Sent"

const (
	ClimbTypeBoulder = "boulder"
	DefaultClimbType = "not specified"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// ProjectLimit caps the open projects dashboard.
const ProjectLimit = 5

// ModePriority ranks climbing modes for dashboard ordering; lower sorts first.
func ModePriority(mode string) int {
	switch mode {
	case ModeLead:
		return 1
	case ModeTopRope:
		return 2
	case ModeAutoBelay:
		return 3
	default:
		return 4
	}
}

type EventType string

const (
	EventAttemptRecorded EventType = "attempt.recorded"
	EventRouteArchived   EventType = "route.archived"
	EventRoutesAdded     EventType = "route.added"
)

func GymChannel(company, suburb string) string {
	return "sendlog:gym:" + company + ":" + suburb
}

func UserChannel(username string) string {
	return "sendlog:user:" + username
}

// CanListen reports whether username may subscribe to channel: any gym channel,
// and only its own user channel.
func CanListen(username, channel string) bool {
	if username == "" {
		return false
	}
	if strings.HasPrefix(channel, "sendlog:gym:") {
		return true
	}
	return channel == UserChannel(username)
}
