package events

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"servicebook/internal/pkg/clock"
	"servicebook/internal/pkg/errs"
	"servicebook/internal/usecase/shared"
)

// ChatMessageCreated is delivered at least once for every new
// chatMessages/{threadId}/{msgId}.
type ChatMessageCreated struct {
	ThreadID  string  `json:"threadId"`
	MessageID string  `json:"messageId"`
	SenderID  string  `json:"senderId"`
	Text      string  `json:"text"`
	CreatedAt float64 `json:"createdAt"`
	Type      string  `json:"type,omitempty"`
}

type ChatMessageCreatedConsumer interface {
	OnChatMessageCreated(ctx context.Context, ev ChatMessageCreated) error
}

type unreadCounter struct {
	store  shared.DocumentStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewUnreadCounter(store shared.DocumentStore, clk clock.Clock, logger *slog.Logger) ChatMessageCreatedConsumer {
	return &unreadCounter{store: store, clock: clk, logger: logger}
}

type chatThread struct {
	Participants map[string]any `json:"participants"`
}

func (u *unreadCounter) OnChatMessageCreated(ctx context.Context, ev ChatMessageCreated) error {
	if ev.ThreadID == "" || ev.SenderID == "" || ev.Text == "" {
		return nil
	}

	snap, err := u.store.Get(ctx, shared.ChatThreadPath(ev.ThreadID))
	if err != nil {
		return errs.Internal(err, "load chat thread")
	}
	if !snap.Exists() {
		return nil
	}
	var thread chatThread
	if err := snap.Decode(&thread); err != nil {
		u.logger.Warn("unreadable chat thread", "thread_id", ev.ThreadID, "error", err)
		return nil
	}
	receiver, ok := receiverOf(thread.Participants, ev.SenderID)
	if !ok {
		return nil
	}

	text := strings.TrimSpace(ev.Text)
	at := int64(ev.CreatedAt)
	if at <= 0 {
		at = clock.NowMillis(u.clock)
	}
	senderThread := shared.UserThreadPath(ev.SenderID, ev.ThreadID)
	receiverThread := shared.UserThreadPath(receiver, ev.ThreadID)
	ws := shared.WriteSet{
		shared.ChatThreadPath(ev.ThreadID) + "/lastMessageText": text,
		shared.ChatThreadPath(ev.ThreadID) + "/lastMessageAt":   at,
		senderThread + "/lastMessageText":                       text,
		senderThread + "/lastMessageAt":                         at,
		senderThread + "/unreadCount":                           0,
		receiverThread + "/lastMessageText":                     text,
		receiverThread + "/lastMessageAt":                       at,
	}
	if err := u.store.Update(ctx, ws); err != nil {
		return errs.Internal(err, "write last message")
	}

	committed, err := u.store.Transaction(ctx, receiverThread+"/unreadCount", func(cur any) (any, bool) {
		return count(cur) + 1, false
	})
	if err != nil {
		return errs.Internal(err, "increment unread count")
	}
	u.logger.Debug("unread count incremented", "thread_id", ev.ThreadID, "receiver", receiver, "unread", committed)
	return nil
}

// receiverOf picks the first active participant other than the sender, in
// uid order. Threads need at least two active participants.
func receiverOf(participants map[string]any, sender string) (string, bool) {
	active := make([]string, 0, len(participants))
	for uid, v := range participants {
		if on, _ := v.(bool); on {
			active = append(active, uid)
		}
	}
	if len(active) < 2 {
		return "", false
	}
	sort.Strings(active)
	for _, uid := range active {
		if uid != sender {
			return uid, true
		}
	}
	return "", false
}

// count reads an unread counter; anything but a number counts as zero.
func count(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
