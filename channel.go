package main

import "context"

// Channel abstracts an external notification platform (Discord, Slack, ...).
// Channels are collaborators outside the router: they receive events through
// a Subscriber registered on their behalf and may produce inbound messages
// destined for the game server.
type Channel interface {
	Name() string
	Send(ctx context.Context, e Event) error
	Messages() <-chan InboundMessage
	Start(ctx context.Context) error
	Close() error
}

// InboundMessage is a message from an external channel destined for the game
// server.
type InboundMessage struct {
	Source  string // channel name, e.g. "Discord"
	Author  string
	Content string
}
