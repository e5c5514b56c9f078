package validation

import "strings"

// reservedUsernames are names that collide with API route segments or
// operational identities. Letting a user register "session" or "admin"
// would make /api/users/session ambiguous and invite impersonation.
var reservedUsernames = map[string]struct{}{
	"admin":         {},
	"administrator": {},
	"api":           {},
	"auth":          {},
	"comments":      {},
	"events":        {},
	"friends":       {},
	"health":        {},
	"login":         {},
	"logout":        {},
	"metrics":       {},
	"moderator":     {},
	"posts":         {},
	"root":          {},
	"session":       {},
	"settings":      {},
	"signup":        {},
	"support":       {},
	"swagger":       {},
	"system":        {},
	"users":         {},
}

// IsReservedUsername reports whether the name is reserved, ignoring case.
func IsReservedUsername(username string) bool {
	_, reserved := reservedUsernames[strings.ToLower(username)]
	return reserved
}
