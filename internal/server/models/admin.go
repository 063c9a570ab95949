// Package models holds the server-side data structures shared by
// repositories and services.
package models

import "time"

// Admin is the acting user of the content management application. Sessions
// are issued elsewhere; the file manager only reads the role for its
// permission gate.
type Admin struct {
	ID        string
	Username  string
	Role      string
	CreatedAt time.Time
}
