// Package domain contains entities without logic, just meta-data
package domain

import (
	"errors"
)

const (
	MaxRoomIDLen = 64
	MaxRoleLen   = 36
)

var (
	ErrRoomIDEmpty   = errors.New("room id empty")
	ErrRoomIDTooLong = errors.New("room id too long")
	ErrRoleEmpty     = errors.New("role empty")
	ErrRoleTooLong   = errors.New("role too long")
)

// NewRoomID avoids raw conversions in adapters and keeps validation in one place.
func NewRoomID(raw string) (RoomID, error) {
	if len(raw) == 0 {
		return "", ErrRoomIDEmpty
	}
	if len(raw) > MaxRoomIDLen {
		return "", ErrRoomIDTooLong
	}
	return RoomID(raw), nil
}

// NewRole accepts any free-form label; only emptiness and length are checked.
func NewRole(raw string) (Role, error) {
	if len(raw) == 0 {
		return "", ErrRoleEmpty
	}
	if len(raw) > MaxRoleLen {
		return "", ErrRoleTooLong
	}
	return Role(raw), nil
}
