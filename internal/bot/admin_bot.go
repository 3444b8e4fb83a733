// Package bot runs the Telegram admin bot: a moderation back channel for
// stats, user bans, feedback review and email-log purges.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"wallettally/internal/logger"
	"wallettally/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type AdminBot struct {
	bot      *tgbotapi.BotAPI
	admin    *service.AdminService
	adminIDs []int64
	stopCh   chan struct{}
	wg       sync.WaitGroup
	log      *slog.Logger
}

func NewAdminBot(token string, admin *service.AdminService, adminIDs []int64) (*AdminBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "admin_bot")
	log.Info("admin bot authorized", "username", api.Self.UserName)

	return &AdminBot{
		bot:      api,
		admin:    admin,
		adminIDs: adminIDs,
		stopCh:   make(chan struct{}),
		log:      log,
	}, nil
}

// Start blocks on the update loop until Stop is called.
func (b *AdminBot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)
	b.log.Info("starting bot update loop")

	for {
		select {
		case <-b.stopCh:
			b.log.Info("stopping bot update loop")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if !b.isAdmin(update.Message.From.ID) {
				continue
			}

			b.wg.Add(1)
			go func(msg *tgbotapi.Message) {
				defer b.wg.Done()
				b.handleCommand(msg)
			}(update.Message)
		}
	}
}

// Stop shuts the bot down, waiting briefly for in-flight handlers.
func (b *AdminBot) Stop() {
	close(b.stopCh)
	b.bot.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.log.Info("admin bot stopped")
	case <-time.After(10 * time.Second):
		b.log.Warn("admin bot shutdown timeout")
	}
}

func (b *AdminBot) isAdmin(userID int64) bool {
	for _, id := range b.adminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (b *AdminBot) handleCommand(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var response string

	switch msg.Command() {
	case "start", "help":
		response = helpMessage()
	case "stats":
		response = b.handleStats(ctx)
	case "user":
		response = b.handleUser(ctx, msg.CommandArguments())
	case "ban":
		response = b.handleBan(ctx, msg.CommandArguments(), true)
	case "unban":
		response = b.handleBan(ctx, msg.CommandArguments(), false)
	case "feedback":
		response = b.handleFeedback(ctx)
	case "purgelogs":
		response = b.handlePurgeLogs(ctx, msg.CommandArguments())
	default:
		response = "Unknown command. /help for the list."
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, response)
	if _, err := b.bot.Send(reply); err != nil {
		b.log.Error("failed to send reply", "error", err)
	}
}

func helpMessage() string {
	return strings.Join([]string{
		"Wallet Tally admin commands:",
		"/stats - user and transaction counts",
		"/user <id> - show a user",
		"/ban <id> - suspend a user",
		"/unban <id> - lift a suspension",
		"/feedback - latest open feedback",
		"/purgelogs <days> - delete email logs older than N days",
	}, "\n")
}

func (b *AdminBot) handleStats(ctx context.Context) string {
	stats, err := b.admin.Stats(ctx)
	if err != nil {
		return "error: " + err.Error()
	}
	return fmt.Sprintf("Users: %d\nTransactions: %d", stats.Users, stats.Transactions)
}

func (b *AdminBot) handleUser(ctx context.Context, args string) string {
	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		return "usage: /user <id>"
	}

	user, err := b.admin.GetUser(ctx, id)
	if err != nil {
		return "user not found"
	}

	state := "active"
	if user.Banned {
		state = "banned"
	}
	return fmt.Sprintf("#%d %s (%s)\nverified: %v\nstate: %s\nsince: %s",
		user.ID, user.Email, user.Name, user.Verified, state,
		user.CreatedAt.Format("2006-01-02"))
}

func (b *AdminBot) handleBan(ctx context.Context, args string, banned bool) string {
	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		if banned {
			return "usage: /ban <id>"
		}
		return "usage: /unban <id>"
	}

	if err := b.admin.SetBanned(ctx, id, banned); err != nil {
		return "error: " + err.Error()
	}
	if banned {
		return fmt.Sprintf("user %d banned", id)
	}
	return fmt.Sprintf("user %d unbanned", id)
}

func (b *AdminBot) handleFeedback(ctx context.Context) string {
	items, err := b.admin.ListFeedback(ctx, "open", 10)
	if err != nil {
		return "error: " + err.Error()
	}
	if len(items) == 0 {
		return "no open feedback"
	}

	var sb strings.Builder
	for _, f := range items {
		fmt.Fprintf(&sb, "#%d [%d/5] user %d: %s\n", f.ID, f.Rating, f.UserID, truncate(f.Message, 80))
	}
	return sb.String()
}

func (b *AdminBot) handlePurgeLogs(ctx context.Context, args string) string {
	days, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || days < 1 {
		return "usage: /purgelogs <days>"
	}

	n, err := b.admin.PurgeEmailLogs(ctx, time.Duration(days)*24*time.Hour)
	if err != nil {
		return "error: " + err.Error()
	}
	return fmt.Sprintf("purged %d email logs older than %d days", n, days)
}

// truncate shortens a message to at most n runes without splitting a
// multibyte character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
