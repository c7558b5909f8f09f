package domain

import "time"

// ActorRoleAnonymous labels traffic events from unauthenticated callers.
const ActorRoleAnonymous = "anonymous"

// TrafficEvent is an append-only record of one API request.
type TrafficEvent struct {
	ID        int64
	Path      string
	Method    string
	ActorRole string
	ActorID   *int64
	CreatedAt time.Time
}

// PathCount pairs a request path with its event count.
type PathCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// RoleCount pairs an actor role with its event count.
type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}
