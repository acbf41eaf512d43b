package brokermessage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	DirectionIn  = "I"
	DirectionOut = "O"
)

// Routing keys understood by this application.
const (
	KeyFileStored  = "FILE.STORED"
	KeyFileDeleted = "FILE.DELETED"
)

type (
	// BrokerMessage is the durable outbox/inbox envelope. A message is
	// eligible for processing while has_executed and
	// has_execution_stopped are both false and next_retry_at has passed.
	BrokerMessage struct {
		ID        uuid.UUID
		Direction string
		App       string
		Key       string
		Body      json.RawMessage

		HasExecuted         bool
		HasExecutionStopped bool
		CountOfRetries      int
		NextRetryAt         time.Time
		SecondsToNextRetry  int

		Created time.Time
		Updated time.Time
	}
	BrokerMessages []*BrokerMessage
)

var ErrNotFound = errors.New("broker message not found")

func (m *BrokerMessage) IsEligible(now time.Time) bool {
	return !m.HasExecuted && !m.HasExecutionStopped && m.NextRetryAt.Before(now)
}
