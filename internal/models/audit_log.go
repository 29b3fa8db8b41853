package models

import "time"

type AuditLogEntry struct {
	ID        string
	Message   string
	Stack     string
	Path      string
	Method    string
	CreatedAt time.Time
}
