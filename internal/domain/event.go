package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic: a derived
// inference configuration document keyed by the canonical dataset path.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// NewOutputEvent assembles the sink message for one finished derivation.
// The key is the dataset path, the value the serialized configuration
// document; headers carry routing metadata and the derivation timestamp.
func NewOutputEvent(path string, document []byte, addr DatasetAddress) OutputEvent {
	return OutputEvent{
		Key:   []byte(path),
		Value: document,
		Headers: map[string]string{
			"model_name":    addr.ModelName,
			"data_kind":     addr.DataKind,
			"analysis_time": addr.AnalysisTime.UTC().Format(AnalysisTimeLayout),
			"derived_at":    clock.Now().UTC().Format(time.RFC3339),
		},
	}
}
