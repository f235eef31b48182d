package notify

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegram_NotifyPostsFormEncodedMessage(t *testing.T) {
	var gotPath, gotChatID, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotChatID = r.PostFormValue("chat_id")
		gotText = r.PostFormValue("text")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := NewTelegram("bot-token", "chat-42", slog.Default())
	tg.baseURL = srv.URL

	tg.Notify(context.Background(), "expense recorded: 100.00 UZS")

	assert.Equal(t, "/botbot-token/sendMessage", gotPath)
	assert.Equal(t, "chat-42", gotChatID)
	assert.Equal(t, "expense recorded: 100.00 UZS", gotText)
}

func TestTelegram_NotifySwallowsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tg := NewTelegram("bot-token", "chat-42", slog.Default())
	tg.baseURL = srv.URL

	// Must not panic or block; failures are logged only.
	tg.Notify(context.Background(), "hello")
}

func TestTelegram_NotifySwallowsConnectionErrors(t *testing.T) {
	tg := NewTelegram("bot-token", "chat-42", slog.Default())
	tg.baseURL = "http://127.0.0.1:1"

	tg.Notify(context.Background(), "hello")
}
