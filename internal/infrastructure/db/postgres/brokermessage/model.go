package brokermessage

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type (
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
