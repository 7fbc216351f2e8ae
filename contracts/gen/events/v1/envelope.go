package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical, versioned event envelope for cross-runtime use.
// This package is generated-contract-only and must stay backward compatible.
type Envelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}

// Event types emitted by the paywall ledger.
const (
	EventTypePaywallCreated = "paywall.created"
	EventTypePaywallUpdated = "paywall.updated"
	EventTypePaywallMinted  = "paywall.minted"
)

// SchemaVersion is the envelope schema version written by this module.
const SchemaVersion = 1

// NewEnvelope marshals data and stamps it with the canonical envelope fields.
// The event id doubles as trace id when the caller has no upstream trace.
func NewEnvelope(
	eventID string,
	eventType string,
	sourceService string,
	partitionKeyPath string,
	partitionKey string,
	occurredAt time.Time,
	data any,
) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    sourceService,
		TraceID:          eventID,
		SchemaVersion:    SchemaVersion,
		PartitionKeyPath: partitionKeyPath,
		PartitionKey:     partitionKey,
		Data:             raw,
	}, nil
}
