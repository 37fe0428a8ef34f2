package domain

import "time"

type TaskKind string

const TaskReconnectSession TaskKind = "session.reconnect"

// Task is a unit of background work submitted to the scheduler. DedupKey
// identifies tasks that must not be outstanding twice.
type Task struct {
	ID         string        `json:"id"`
	Kind       TaskKind      `json:"kind"`
	Tenant     string        `json:"tenant"`
	SessionID  string        `json:"sessionId"`
	DedupKey   string        `json:"dedupKey"`
	Timeout    time.Duration `json:"timeout"`
	EnqueuedAt time.Time     `json:"enqueuedAt"`
}
