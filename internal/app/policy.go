package app

import "github.com/dkeye/Consult/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a recipient whose delivery failed.
type Policy interface {
	OnBackPressure(room core.RoomService, member core.Dropped) BackpressureAction
}

// SimplePolicy treats every failed delivery as an implicit disconnect.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(room core.RoomService, member core.Dropped) BackpressureAction {
	return KickMember
}
