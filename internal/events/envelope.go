package events

import (
	"encoding/json"
	"fmt"
)

// Envelope is the frame written to websocket clients and carried over redis.
// Payload holds the view serialized as a JSON string.
type Envelope struct {
	Event   string `json:"event"`
	Payload string `json:"payload"`
}

func NewEnvelope(event string, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}
	return Envelope{Event: event, Payload: string(data)}, nil
}

func (e Envelope) Bytes() ([]byte, error) {
	return json.Marshal(e)
}

func DecodeEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Envelope{}, err
	}
	if e.Event == "" {
		return Envelope{}, fmt.Errorf("envelope without event")
	}
	return e, nil
}
