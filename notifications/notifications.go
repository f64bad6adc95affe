// Package notifications relays pipeline events to the staff Discord
// server. Relays are best-effort: a failed relay is reported to the caller
// but never rolls back a committed mutation.
package notifications

import (
	"magpie/config"
	"magpie/types"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

type Relay struct {
	Discord *discordgo.Session
	Config  *config.Config
}

func New(discord *discordgo.Session, cfg *config.Config) *Relay {
	return &Relay{Discord: discord, Config: cfg}
}

// BotAdded announces a freshly queued bot in the queue log channel
func (n *Relay) BotAdded(c *types.Candidate, callerID string) error {
	_, err := n.Discord.ChannelMessageSendComplex(n.Config.Channels.BotLogs, &discordgo.MessageSend{
		Content: n.Config.Meta.UrgentMentions,
		Embeds: []*discordgo.MessageEmbed{
			{
				URL:   n.Config.Sites.Frontend + "/bots/" + c.ID,
				Title: "New Bot Added",
				Thumbnail: &discordgo.MessageEmbedThumbnail{
					URL: c.User.Avatar,
				},
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:   "Name",
						Value:  c.User.Username,
						Inline: true,
					},
					{
						Name:   "Bot ID",
						Value:  c.ID,
						Inline: true,
					},
					{
						Name:   "Main Owner",
						Value:  "<@" + callerID + ">",
						Inline: true,
					},
				},
			},
		},
	})

	return err
}

// BotEdited announces an edit in the queue log channel
func (n *Relay) BotEdited(botID, callerID string) error {
	_, err := n.Discord.ChannelMessageSendComplex(n.Config.Channels.BotLogs, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				URL:   n.Config.Sites.Frontend + "/bots/" + botID,
				Title: "Bot Edited",
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:   "Bot ID",
						Value:  botID,
						Inline: true,
					},
					{
						Name:   "Edited By",
						Value:  "<@" + callerID + ">",
						Inline: true,
					},
				},
			},
		},
	})

	return err
}

// BotDeleted announces a deletion in the queue log channel
func (n *Relay) BotDeleted(botID, callerID string) error {
	_, err := n.Discord.ChannelMessageSend(n.Config.Channels.BotLogs, "Bot <@"+botID+"> ("+botID+") was deleted by <@"+callerID+">")

	return err
}

// OwnershipTransferred announces a main-owner transfer
func (n *Relay) OwnershipTransferred(botID, fromID, toID string) error {
	_, err := n.Discord.ChannelMessageSend(n.Config.Channels.BotLogs, "Ownership of <@"+botID+"> ("+botID+") was transferred from <@"+fromID+"> to <@"+toID+">")

	return err
}

// Appeal relays an appeal, certification request or report to the staff
// channel for its type. Appeals are never persisted; the relay is the
// whole delivery.
func (n *Relay) Appeal(targetType, targetID, callerID string, appeal types.Appeal) error {
	channel := n.Config.Channels.Appeals
	title := "New Appeal"

	switch appeal.RequestType {
	case types.AppealTypeCertification:
		title = "New Certification Request"
	case types.AppealTypeReport:
		channel = n.Config.Channels.Reports
		title = "New Report"
	}

	_, err := n.Discord.ChannelMessageSendComplex(channel, &discordgo.MessageSend{
		Content: n.Config.Meta.UrgentMentions,
		Embeds: []*discordgo.MessageEmbed{
			{
				URL:   n.Config.Sites.Frontend + "/" + targetType + "s/" + targetID,
				Title: title,
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:  "Reference",
						Value: uuid.New().String(),
					},
					{
						Name:   "Target",
						Value:  targetType + " " + targetID,
						Inline: true,
					},
					{
						Name:   "Submitted By",
						Value:  "<@" + callerID + ">",
						Inline: true,
					},
					{
						Name:  "Message",
						Value: appeal.Appeal,
					},
				},
			},
		},
	})

	return err
}

// VoteCast logs a vote in the vote log channel
func (n *Relay) VoteCast(botID, callerID string) error {
	_, err := n.Discord.ChannelMessageSend(n.Config.Channels.VoteLogs, "<@"+callerID+"> voted for <@"+botID+"> ("+botID+")")

	return err
}
