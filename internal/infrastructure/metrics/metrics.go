package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counter results.
const (
	FileStored      = "file_stored"
	FileDeleted     = "file_deleted"
	FileErased      = "file_erased"
	FileCloned      = "file_cloned"
	BrokerPublished = "broker_published"
	BrokerExecuted  = "broker_executed"
)

func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filestore",
			Name:      "general_counters",
		},
		[]string{"result"})
}
