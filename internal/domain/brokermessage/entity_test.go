package brokermessage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEligible(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		msg  BrokerMessage
		want bool
	}{
		{"due", BrokerMessage{NextRetryAt: now.Add(-time.Second)}, true},
		{"not yet due", BrokerMessage{NextRetryAt: now.Add(time.Minute)}, false},
		{"executed", BrokerMessage{HasExecuted: true, NextRetryAt: now.Add(-time.Second)}, false},
		{"stopped", BrokerMessage{HasExecutionStopped: true, NextRetryAt: now.Add(-time.Second)}, false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.IsEligible(now))
		})
	}
}
