package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"absensi-bot/internal/directory"
	"absensi-bot/internal/ledger"
	"absensi-bot/internal/models"
	"absensi-bot/pkg/logger"

	"go.uber.org/zap"
)

const timestampLayout = "2006-01-02 15:04:05"

// Sender delivers replies to a user. The transport decides how; the location
// request additionally asks the chat client to offer location sharing.
type Sender interface {
	SendText(chatID int64, text string) error
	SendLocationRequest(chatID int64, text string) error
}

// Handler is the per-user conversation state machine. All inbound events for
// one user arrive in order (the dispatcher guarantees that); every event
// leaves the session in a well-defined state.
type Handler struct {
	Directory *directory.Service
	Ledger    *ledger.Service
	Sender    Sender
	Sessions  *Sessions

	// AdminID receives /reg notifications; zero means nobody does.
	AdminID  int64
	Location *time.Location
	Now      func() time.Time
}

func New(dir *directory.Service, led *ledger.Service, sender Sender, adminID int64, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		Directory: dir,
		Ledger:    led,
		Sender:    sender,
		Sessions:  NewSessions(),
		AdminID:   adminID,
		Location:  loc,
		Now:       time.Now,
	}
}

func (h *Handler) HandleCommand(ctx context.Context, userID int64, name string, args []string) {
	switch name {
	case "start":
		h.send(userID, "Bot absensi sales aktif. Gunakan /help untuk daftar perintah.")
	case "help":
		h.send(userID, "Perintah yang tersedia:\n"+
			"/reg — Daftar sebagai sales\n"+
			"/checkin — Mulai kunjungan toko\n"+
			"/checkout — Tutup kunjungan dengan laporan\n"+
			"/approve <id> <alias> <cabang> — Setujui pendaftaran (admin)")
	case "reg":
		h.handleRegister(ctx, userID)
	case "approve":
		h.handleApprove(ctx, userID, args)
	case "checkin":
		h.handleCheckin(ctx, userID)
	case "checkout":
		h.handleCheckout(ctx, userID)
	default:
		h.send(userID, "Perintah tidak dikenal. Gunakan /help.")
	}
}

func (h *Handler) HandleText(ctx context.Context, userID int64, text string) {
	sess := h.Sessions.Get(userID)

	switch sess.State {
	case models.StateAwaitingStoreInfo:
		h.handleStoreInfo(userID, sess, text)
	case models.StateAwaitingLocation:
		// Stay put: the only way forward is an actual location share.
		h.send(userID, "Mohon bagikan lokasi Anda untuk menyelesaikan check-in.")
	case models.StateAwaitingCheckoutForm:
		h.handleCheckoutForm(ctx, userID, text)
	default:
		h.send(userID, "Maaf, saya tidak mengerti. Gunakan /help untuk daftar perintah.")
	}
}

func (h *Handler) HandleLocation(ctx context.Context, userID int64, lat, lon float64) {
	sess := h.Sessions.Get(userID)

	switch sess.State {
	case models.StateAwaitingLocation:
		h.finishCheckin(ctx, userID, sess, lat, lon)
	case models.StateAwaitingStoreInfo:
		h.Sessions.Reset(userID)
		h.send(userID, "Kirim nama toko dan daerah terlebih dahulu, lalu ulangi /checkin.")
	default:
		h.send(userID, "Maaf, saya tidak mengerti. Gunakan /help untuk daftar perintah.")
	}
}

func (h *Handler) handleCheckin(ctx context.Context, userID int64) {
	if !h.requireIdle(userID) {
		return
	}
	if _, err := h.Directory.FindByID(ctx, formatID(userID)); err != nil {
		h.replyError(userID, err)
		return
	}

	_, err := h.Ledger.FindOpenRecord(ctx, formatID(userID))
	if err == nil {
		h.replyError(userID, models.ErrDuplicateOpenRecord)
		return
	}
	if !errors.Is(err, models.ErrNoOpenRecord) {
		h.replyError(userID, err)
		return
	}

	h.Sessions.Put(models.Session{UserID: userID, State: models.StateAwaitingStoreInfo})
	h.send(userID, "Kirim nama toko dan daerah, dipisah koma.\nContoh: Toko Abadi, Kandangan")
}

func (h *Handler) handleStoreInfo(userID int64, sess models.Session, text string) {
	namaToko, daerah := SplitStoreInfo(text)
	if namaToko == "" {
		h.send(userID, "Nama toko tidak boleh kosong. Contoh: Toko Abadi, Kandangan")
		return
	}

	sess.State = models.StateAwaitingLocation
	sess.PendingNamaToko = namaToko
	sess.PendingDaerah = daerah
	h.Sessions.Put(sess)

	if err := h.Sender.SendLocationRequest(userID, "Bagikan lokasi toko untuk menyelesaikan check-in."); err != nil {
		zap.L().Warn("send location request failed",
			zap.Int64(logger.FieldUserID, userID), zap.Error(err))
	}
}

func (h *Handler) finishCheckin(ctx context.Context, userID int64, sess models.Session, lat, lon float64) {
	// Whatever happens below, the flow is over.
	defer h.Sessions.Reset(userID)

	user, err := h.Directory.FindByID(ctx, formatID(userID))
	if err != nil {
		h.replyError(userID, err)
		return
	}

	now := h.Now().In(h.Location).Format(timestampLayout)
	rec := models.CheckinRecord{
		UserID:    user.ID,
		Alias:     user.Alias,
		Cabang:    user.Cabang,
		NamaToko:  sess.PendingNamaToko,
		Daerah:    sess.PendingDaerah,
		MapsLink:  mapsLink(lat, lon),
		CheckinAt: now,
	}
	if err := h.Ledger.OpenCheckin(ctx, rec); err != nil {
		h.replyError(userID, err)
		return
	}

	h.send(userID, fmt.Sprintf("Check-in tercatat.\nToko: %s\nDaerah: %s\nWaktu: %s",
		rec.NamaToko, orDash(rec.Daerah), now))
}

func (h *Handler) handleCheckout(ctx context.Context, userID int64) {
	if !h.requireIdle(userID) {
		return
	}
	if _, err := h.Directory.FindByID(ctx, formatID(userID)); err != nil {
		h.replyError(userID, err)
		return
	}
	if _, err := h.Ledger.FindOpenRecord(ctx, formatID(userID)); err != nil {
		h.replyError(userID, err)
		return
	}

	h.Sessions.Put(models.Session{UserID: userID, State: models.StateAwaitingCheckoutForm})
	h.send(userID, "Kirim laporan kunjungan dengan format:\n"+
		"Bertemu: <nama kontak>\n"+
		"Order: <nilai order>\n"+
		"Tagihan: <nilai tagihan>\n"+
		"Kendala: <kendala, atau ->")
}

func (h *Handler) handleCheckoutForm(ctx context.Context, userID int64, text string) {
	// The session goes back to idle no matter how the attempt ends; a failed
	// checkout is retried with a fresh /checkout.
	defer h.Sessions.Reset(userID)

	report, ok := ParseCheckoutForm(text)
	if !ok {
		h.send(userID, "Laporan tidak dikenali, check-out dibatalkan.\n"+
			"Ulangi /checkout dan kirim dengan format:\n"+
			"Bertemu: ...\nOrder: ...\nTagihan: ...\nKendala: ...")
		return
	}
	now := h.Now().In(h.Location).Format(timestampLayout)

	if err := h.Ledger.CloseCheckin(ctx, formatID(userID), report, now); err != nil {
		h.replyError(userID, err)
		return
	}

	h.send(userID, fmt.Sprintf("Check-out tercatat pada %s.\n"+
		"Bertemu: %s\nOrder: %s\nTagihan: %s\nKendala: %s",
		now, report.Bertemu, report.Order, report.Tagihan, report.Kendala))
}

// requireIdle keeps /checkin and /checkout from cutting into a running flow.
// A mid-flow command never resets the session; only the message matching the
// awaited shape advances it.
func (h *Handler) requireIdle(userID int64) bool {
	sess := h.Sessions.Get(userID)
	if sess.State == models.StateIdle {
		return true
	}

	switch sess.State {
	case models.StateAwaitingStoreInfo:
		h.send(userID, "Anda sedang check-in. Kirim nama toko dan daerah terlebih dahulu.")
	case models.StateAwaitingLocation:
		h.send(userID, "Anda sedang check-in. Bagikan lokasi Anda terlebih dahulu.")
	case models.StateAwaitingCheckoutForm:
		h.send(userID, "Anda sedang check-out. Kirim laporan kunjungan terlebih dahulu.")
	}
	return false
}

// replyError maps a failure to a user-facing reply. Only store failures are
// logged as errors; the rest is expected user behavior.
func (h *Handler) replyError(userID int64, err error) {
	switch {
	case errors.Is(err, models.ErrNotRegistered):
		h.send(userID, "Anda belum terdaftar. Gunakan /reg untuk mendaftar.")
	case errors.Is(err, models.ErrDuplicateOpenRecord):
		h.send(userID, "Anda masih punya check-in yang belum ditutup. Gunakan /checkout terlebih dahulu.")
	case errors.Is(err, models.ErrNoOpenRecord):
		h.send(userID, "Tidak ada check-in yang terbuka. Gunakan /checkin terlebih dahulu.")
	case errors.Is(err, models.ErrPermissionDenied):
		h.send(userID, "Anda tidak punya izin untuk perintah ini.")
	case errors.Is(err, models.ErrMalformedCommand):
		h.send(userID, "Format: /approve <userId> <alias> <cabang>")
	default:
		zap.L().Error("handler failed",
			zap.Int64(logger.FieldUserID, userID), zap.Error(err))
		h.send(userID, "Terjadi gangguan internal. Silakan coba lagi nanti.")
	}
}

func (h *Handler) send(chatID int64, text string) {
	if err := h.Sender.SendText(chatID, text); err != nil {
		zap.L().Warn("send message failed",
			zap.Int64(logger.FieldChatID, chatID), zap.Error(err))
	}
}

func mapsLink(lat, lon float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%f,%f", lat, lon)
}

func formatID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
