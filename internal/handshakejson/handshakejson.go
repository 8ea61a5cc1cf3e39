// Package handshakejson extracts the three fields the session state
// machine needs out of an Engine.IO OPEN packet's JSON payload. JSON
// parsing in general is explicitly out of scope for the core client
// (spec.md §1); this package is the minimal, swappable boundary the core
// depends on instead of importing a JSON library directly.
package handshakejson

import jsoniter "github.com/json-iterator/go"

// Payload holds the fields consumed from a Socket.IO handshake's OPEN
// packet body: {"sid":"...","upgrades":[...],"pingInterval":N,
// "pingTimeout":N,"maxPayload":N}. Only sid, pingInterval and pingTimeout
// are consumed, matching spec.md §6.
type Payload struct {
	SID          string `json:"sid"`
	PingInterval int    `json:"pingInterval"`
	PingTimeout  int    `json:"pingTimeout"`
}

// Extract parses json and returns the handshake Payload. It returns an
// error if json does not parse, or if sid is empty (the field the
// session state machine cannot proceed without).
func Extract(json string) (Payload, error) {
	var p Payload
	if err := jsoniter.UnmarshalFromString(json, &p); err != nil {
		return Payload{}, err
	}
	if p.SID == "" {
		return Payload{}, errMissingSID
	}
	return p, nil
}

var errMissingSID = missingFieldError("sid")

type missingFieldError string

func (e missingFieldError) Error() string {
	return "handshake JSON missing required field: " + string(e)
}
