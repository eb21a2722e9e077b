package main

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// bridgeHandler forwards dispatched events into the bridge's buffered channel.
// A full buffer drops the event rather than stall the tick; notifications are
// best-effort, counters and presence are not.
func bridgeHandler(events chan<- Event) Handler {
	return func(e Event) {
		select {
		case events <- e:
		default:
		}
	}
}

// Bridge fans events out to notification channels on its own goroutine and
// relays inbound channel messages to the game server over RCON.
type Bridge struct {
	rcon     *RCONPool // nil when rcon is disabled
	channels []Channel
	events   chan Event
}

func NewBridge(pool *RCONPool, channels []Channel) *Bridge {
	return &Bridge{
		rcon:     pool,
		channels: channels,
		events:   make(chan Event, 100),
	}
}

// Events returns the channel the bridge handler writes to.
func (b *Bridge) Events() chan<- Event {
	return b.events
}

// FanOutEvents reads events and sends them to all channels.
func (b *Bridge) FanOutEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-b.events:
			for _, ch := range b.channels {
				if err := ch.Send(ctx, e); err != nil {
					log.Printf("send to %s: %v", ch.Name(), err)
				}
			}
		}
	}
}

// HandleInbound reads messages from a channel and forwards them to the game.
func (b *Bridge) HandleInbound(ctx context.Context, ch Channel) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch.Messages():
			b.sendToGame(msg)
		}
	}
}

func (b *Bridge) sendToGame(msg InboundMessage) {
	if b.rcon == nil {
		return
	}

	safe := msg.Content
	safe = strings.ReplaceAll(safe, `\`, `\\`)
	safe = strings.ReplaceAll(safe, `"`, `\"`)
	safe = strings.ReplaceAll(safe, "\n", " ")
	if len(safe) > 200 {
		safe = safe[:200] + "..."
	}

	cmd := fmt.Sprintf(`/sc game.print("[color=purple][%s][/color] %s: %s")`,
		msg.Source, msg.Author, safe)

	if _, err := b.rcon.Execute(cmd); err != nil {
		log.Printf("rcon send to game: %v", err)
	}
}
