package domain

import (
	"encoding/json"
	"time"
)

// JobKind — тип долгой операции поставщика, которую витрина отслеживает опросом.
type JobKind string

const (
	JobImport   JobKind = "import"
	JobLink     JobKind = "link"
	JobDownload JobKind = "download"
)

func (k JobKind) Valid() bool {
	switch k {
	case JobImport, JobLink, JobDownload:
		return true
	}
	return false
}

type JobState string

const (
	JobRunning   JobState = "running"
	JobCompleted JobState = "completed"
	JobFailed    JobState = "failed"
	JobCancelled JobState = "cancelled"
	JobTimedOut  JobState = "timed_out"
)

// Terminal сообщает, что опрос можно прекращать.
func (s JobState) Terminal() bool {
	return s != JobRunning
}

// Job — снимок отслеживаемой операции.
type Job struct {
	ID         string          `json:"id"`
	Kind       JobKind         `json:"kind"`
	SupplierID string          `json:"supplier_id"`
	RemoteID   string          `json:"remote_id,omitempty"`
	State      JobState        `json:"state"`
	Status     string          `json:"status"`
	Progress   json.RawMessage `json:"progress,omitempty"`
	Polls      int             `json:"polls"`
	LastError  string          `json:"last_error,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}
