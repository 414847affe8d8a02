package bot

import (
	"context"
	"strings"
	"sync"

	"absensi-bot/internal/handlers"
	"absensi-bot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const userQueueSize = 16

// Dispatcher fans updates out to one worker goroutine per user, so one
// user's slow store call never blocks another user's events while a single
// user's events keep their original order.
type Dispatcher struct {
	handler *handlers.Handler

	ctx   context.Context
	group *errgroup.Group

	mu     sync.Mutex
	queues map[int64]chan tgbotapi.Update
}

func NewDispatcher(ctx context.Context, handler *handlers.Handler) *Dispatcher {
	group, ctx := errgroup.WithContext(ctx)
	return &Dispatcher{
		handler: handler,
		ctx:     ctx,
		group:   group,
		queues:  make(map[int64]chan tgbotapi.Update),
	}
}

// Dispatch routes the update to its user's queue, starting a worker on first
// contact. A full queue drops the update instead of stalling other users.
func (d *Dispatcher) Dispatch(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil || !msg.Chat.IsPrivate() {
		return
	}
	userID := msg.From.ID

	d.mu.Lock()
	queue, ok := d.queues[userID]
	if !ok {
		queue = make(chan tgbotapi.Update, userQueueSize)
		d.queues[userID] = queue
		d.group.Go(func() error {
			d.run(userID, queue)
			return nil
		})
	}
	d.mu.Unlock()

	select {
	case queue <- update:
	default:
		zap.L().Warn("user queue full, dropping update",
			zap.Int64(logger.FieldUserID, userID))
	}
}

// Wait blocks until all user workers have drained after context cancel.
func (d *Dispatcher) Wait() error {
	return d.group.Wait()
}

func (d *Dispatcher) run(userID int64, queue <-chan tgbotapi.Update) {
	for {
		select {
		case <-d.ctx.Done():
			return
		case update := <-queue:
			d.route(userID, update.Message)
		}
	}
}

func (d *Dispatcher) route(userID int64, msg *tgbotapi.Message) {
	switch {
	case msg.Location != nil:
		d.handler.HandleLocation(d.ctx, userID, msg.Location.Latitude, msg.Location.Longitude)
	case msg.IsCommand():
		args := strings.Fields(msg.CommandArguments())
		d.handler.HandleCommand(d.ctx, userID, msg.Command(), args)
	default:
		d.handler.HandleText(d.ctx, userID, msg.Text)
	}
}
