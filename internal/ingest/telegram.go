package ingest

import (
	"strconv"
	"time"

	"github.com/go-telegram/bot/models"

	coremodels "github.com/nexuscore/reasoning/pkg/models"
)

// telegramGroupChatTypes are the Chat.Type values Telegram uses for
// multi-member chats. Telegram has no separate "guild" concept — a chat
// is either a 1:1 private chat or one of these group forms, and that
// distinction is the only signal available for zone resolution.
var telegramGroupChatTypes = map[string]bool{
	"group":      true,
	"supergroup": true,
	"channel":    true,
}

// FromTelegramUpdate builds an Observation from a go-telegram/bot Update.
// A private chat yields an empty GuildID (PRIVATE_DM); a group,
// supergroup, or channel yields GuildID set to the chat ID, so
// identity.ResolveZone treats it as PUBLIC_GUILD.
func FromTelegramUpdate(u *models.Update) (coremodels.Observation, bool) {
	if u == nil || u.Message == nil || u.Message.From == nil || u.Message.From.IsBot {
		return coremodels.Observation{}, false
	}
	msg := u.Message

	var guildID string
	if telegramGroupChatTypes[msg.Chat.Type] {
		guildID = strconv.FormatInt(msg.Chat.ID, 10)
	}

	ts := time.Now().UTC()
	if msg.Date > 0 {
		ts = time.Unix(int64(msg.Date), 0).UTC()
	}

	return coremodels.Observation{
		ID:                strconv.Itoa(msg.ID),
		Type:              "chat.message",
		Content:           msg.Text,
		AuthorID:          strconv.FormatInt(msg.From.ID, 10),
		ChannelID:         strconv.FormatInt(msg.Chat.ID, 10),
		GuildID:           guildID,
		Timestamp:         ts,
		AuthorDisplayName: telegramDisplayName(msg.From),
	}, true
}

func telegramDisplayName(u *models.User) string {
	if u.Username != "" {
		return u.Username
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}
