package entity

import "errors"

// Conflict errors: the caller should pick a different room, date range or
// rule window rather than retry blindly.
var (
	ErrRoomUnavailable = errors.New("room is not available for the requested interval")
	ErrOverlappingRule = errors.New("rate rule overlaps an existing rule")
)

// Invalid-state errors: the client holds a stale view of the reservation.
var (
	ErrNotPending                  = errors.New("reservation is not pending")
	ErrNotConfirmed                = errors.New("reservation is not confirmed")
	ErrNotCheckedIn                = errors.New("reservation is not checked in")
	ErrInvalidStateForCancellation = errors.New("reservation can no longer be cancelled")
	ErrRoomNotReady                = errors.New("room is not ready for check-in")
)

var ErrNotFound = errors.New("record not found")

// Validation errors.
var (
	ErrInvalidRange     = errors.New("rule start date is after end date")
	ErrInvalidStay      = errors.New("checkout must be after checkin")
	ErrInvalidOccupancy = errors.New("occupancy must be positive")
)

// ErrNotOwner guards guest-initiated cancel/purge.
var ErrNotOwner = errors.New("reservation belongs to another customer")
