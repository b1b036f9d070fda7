// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package messaging

import (
	"github.com/nats-io/nats.go"
)

// NatsMessage wraps a NATS message so handlers only depend on the domain
// Message interface.
type NatsMessage struct {
	msg *nats.Msg
}

// NewNatsMessage wraps an inbound NATS message.
func NewNatsMessage(msg *nats.Msg) *NatsMessage {
	return &NatsMessage{msg: msg}
}

// Subject returns the subject of the message.
func (m *NatsMessage) Subject() string {
	return m.msg.Subject
}

// Data returns the payload of the message.
func (m *NatsMessage) Data() []byte {
	return m.msg.Data
}

// HasReply reports whether the sender expects a response.
func (m *NatsMessage) HasReply() bool {
	return m.msg.Reply != ""
}

// Respond sends the response back to the requester.
func (m *NatsMessage) Respond(data []byte) error {
	return m.msg.Respond(data)
}
