package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/conference-registration-api/internal/models"
)

// ChannelMessenger is the part of *discordgo.Session used to post messages.
type ChannelMessenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   ChannelMessenger
	channelID string
	logger    *slog.Logger
}

func NewDiscordNotifier(session ChannelMessenger, channelID string, logger *slog.Logger) *DiscordNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
		logger:    logger,
	}
}

// NewDiscordSession opens a bot session for organizer notifications.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, ErrDisabled
	}
	return discordgo.New("Bot " + token)
}

func (n *DiscordNotifier) NotifyRegistration(ctx context.Context, registrant models.Registrant, conference models.Conference) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, registrationMessage(registrant, conference), discordgo.WithContext(ctx))
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to send discord message", "error", err)
		return err
	}

	return nil
}

func registrationMessage(registrant models.Registrant, conference models.Conference) string {
	motivationStr := ""
	if registrant.Motivation != "" {
		motivationStr = fmt.Sprintf("\n**Motivation:** %s", registrant.Motivation)
	}

	return fmt.Sprintf("🎉 **Nouvelle inscription**\n**Participant:** %s %s\n**Email:** %s\n**Conférence:** %s\n**Date:** %s%s",
		registrant.Prenom,
		registrant.Nom,
		registrant.Email,
		conference.Titre,
		conference.DateKey(),
		motivationStr,
	)
}
