package main

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// DiscordChannel posts formatted game events to one Discord channel and
// relays messages typed there back toward the game. Sends are rate limited
// below Discord's per-channel ceiling.
type DiscordChannel struct {
	session   *discordgo.Session
	channelID string
	inbound   chan InboundMessage
	botUserID string
	limiter   *rate.Limiter
	cfg       *Config
}

func NewDiscordChannel(token, channelID string, cfg *Config) (*DiscordChannel, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discordgo session: %w", err)
	}

	dc := &DiscordChannel{
		session:   session,
		channelID: channelID,
		inbound:   make(chan InboundMessage, 100),
		limiter:   rate.NewLimiter(rate.Limit(1), 5),
		cfg:       cfg,
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
	session.AddHandler(dc.onMessage)

	return dc, nil
}

func (dc *DiscordChannel) Name() string { return "Discord" }

func (dc *DiscordChannel) Start(ctx context.Context) error {
	if err := dc.session.Open(); err != nil {
		return fmt.Errorf("discord open: %w", err)
	}
	dc.botUserID = dc.session.State.User.ID
	log.Printf("discord bot connected as %s", dc.session.State.User.Username)

	<-ctx.Done()
	dc.session.Close()
	return nil
}

func (dc *DiscordChannel) Send(ctx context.Context, e Event) error {
	if !dc.cfg.discordEventAllowed(e.Kind) {
		return nil
	}

	msg := formatEvent(e)
	if msg == "" {
		return nil
	}

	if err := dc.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := dc.session.ChannelMessageSend(dc.channelID, msg); err != nil {
		return fmt.Errorf("send to Discord: %w", err)
	}
	return nil
}

func (dc *DiscordChannel) Messages() <-chan InboundMessage { return dc.inbound }

func (dc *DiscordChannel) Close() error {
	return dc.session.Close()
}

func (dc *DiscordChannel) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot || m.Author.ID == dc.botUserID {
		return
	}
	if m.ChannelID != dc.channelID {
		return
	}
	if m.Content == "" {
		return
	}

	author := m.Author.GlobalName
	if author == "" {
		author = m.Author.Username
	}

	dc.inbound <- InboundMessage{
		Source:  "Discord",
		Author:  author,
		Content: m.Content,
	}
}

func formatEvent(e Event) string {
	switch e.Kind {
	case KindChat:
		return fmt.Sprintf("💬 **%s**: %s", e.Player, e.Message)
	case KindJoin:
		if country := e.extra("country"); country != "" && country != UnknownLocation {
			return fmt.Sprintf("➡️ **%s** joined the game (from %s)", e.Player, country)
		}
		return fmt.Sprintf("➡️ **%s** joined the game", e.Player)
	case KindLeave:
		return fmt.Sprintf("⬅️ **%s** left the game", e.Player)
	case KindResearch:
		return fmt.Sprintf("🔬 Research completed: **%s**", e.extra("tech"))
	case KindDeath:
		return fmt.Sprintf("💀 **%s** was killed by %s", e.Player, e.extra("cause"))
	case KindStatsKill:
		return fmt.Sprintf("⚔️ **%s** killed a %s with %s", e.Player, e.extra("unit"), e.extra("weapon"))
	case KindAccess:
		return fmt.Sprintf("🚫 Connection refused for %s", e.extra("conn"))
	default:
		return ""
	}
}
