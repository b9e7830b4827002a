package domain

import (
	"time"

	"github.com/google/uuid"
)

// NoYes mirrors the two-valued local menu used across the accounting tables.
type NoYes int

const (
	No  NoYes = 1
	Yes NoYes = 2
)

// Bool converts the local-menu value to a Go bool.
func (v NoYes) Bool() bool { return v == Yes }

// NoYesFromBool converts a Go bool to the local-menu value.
func NoYesFromBool(b bool) NoYes {
	if b {
		return Yes
	}
	return No
}

// RowStamp holds the audit columns every persisted accounting row carries.
type RowStamp struct {
	CreateUser     string
	UpdateUser     string
	CreateDatetime time.Time
	UpdateDatetime time.Time
	SingleID       string
}

// NewRowStamp builds a RowStamp for user at the given instant.
func NewRowStamp(user string, at time.Time) RowStamp {
	return RowStamp{
		CreateUser:     user,
		UpdateUser:     user,
		CreateDatetime: at,
		UpdateDatetime: at,
		SingleID:       uuid.NewString(),
	}
}

// DefaultUser is stamped on rows created without an authenticated caller.
const DefaultUser = "INTER"

// DefaultLegacyDate is the placeholder date stored in non-nullable date
// columns that have no meaningful value for a given row.
var DefaultLegacyDate = time.Date(1599, time.December, 31, 0, 0, 0, 0, time.UTC)
