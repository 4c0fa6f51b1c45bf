package ingest

import (
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestFromTelegramUpdatePrivateChatIsDirect(t *testing.T) {
	u := &models.Update{
		Message: &models.Message{
			ID:   1,
			Text: "hi",
			Chat: models.Chat{ID: 100, Type: "private"},
			From: &models.User{ID: 200, Username: "alice"},
		},
	}
	obs, ok := FromTelegramUpdate(u)
	if !ok {
		t.Fatal("expected ok")
	}
	if obs.GuildID != "" {
		t.Errorf("GuildID = %q, want empty for a private chat", obs.GuildID)
	}
	if !obs.IsDirectMessage() {
		t.Error("expected IsDirectMessage to be true")
	}
}

func TestFromTelegramUpdateGroupChatIsPublic(t *testing.T) {
	u := &models.Update{
		Message: &models.Message{
			ID:   2,
			Text: "hi all",
			Chat: models.Chat{ID: -100, Type: "supergroup"},
			From: &models.User{ID: 200, Username: "alice"},
		},
	}
	obs, ok := FromTelegramUpdate(u)
	if !ok {
		t.Fatal("expected ok")
	}
	if obs.GuildID == "" {
		t.Error("expected a non-empty GuildID for a supergroup chat")
	}
}

func TestFromTelegramUpdateIgnoresBots(t *testing.T) {
	u := &models.Update{
		Message: &models.Message{
			Chat: models.Chat{ID: 1, Type: "private"},
			From: &models.User{ID: 2, IsBot: true},
		},
	}
	if _, ok := FromTelegramUpdate(u); ok {
		t.Fatal("expected bot messages to be dropped")
	}
}
