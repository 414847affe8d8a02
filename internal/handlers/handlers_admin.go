package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"absensi-bot/internal/models"
	"absensi-bot/pkg/logger"

	"go.uber.org/zap"
)

// handleRegister is stateless: approval happens later, out of band, through
// an admin /approve. The requester only exists in the admin's notification
// until then.
func (h *Handler) handleRegister(ctx context.Context, userID int64) {
	user, err := h.Directory.FindByID(ctx, formatID(userID))
	if err == nil {
		h.send(userID, fmt.Sprintf("Anda sudah terdaftar sebagai %s (cabang %s).",
			user.Alias, user.Cabang))
		return
	}
	if !errors.Is(err, models.ErrNotRegistered) {
		h.replyError(userID, err)
		return
	}

	if h.AdminID != 0 {
		h.send(h.AdminID, fmt.Sprintf("Permintaan pendaftaran baru dari ID %d.\n"+
			"Setujui dengan: /approve %d <alias> <cabang>", userID, userID))
	} else {
		zap.L().Warn("registration request with no admin configured",
			zap.Int64(logger.FieldUserID, userID))
	}

	h.send(userID, "Permintaan pendaftaran telah dikirim ke admin. Mohon tunggu persetujuan.")
}

// handleApprove registers the target user with role "user". Caller must be
// admin or owner; three arguments are required: id, alias, cabang.
func (h *Handler) handleApprove(ctx context.Context, callerID int64, args []string) {
	role, err := h.Directory.RoleOf(ctx, formatID(callerID))
	if err != nil {
		if errors.Is(err, models.ErrNotRegistered) {
			h.replyError(callerID, models.ErrPermissionDenied)
			return
		}
		h.replyError(callerID, err)
		return
	}
	if !role.CanApprove() {
		h.replyError(callerID, models.ErrPermissionDenied)
		return
	}

	if len(args) < 3 {
		h.replyError(callerID, models.ErrMalformedCommand)
		return
	}
	targetID := strings.TrimSpace(args[0])
	alias := args[1]
	cabang := args[2]

	targetChatID, err := strconv.ParseInt(targetID, 10, 64)
	if err != nil {
		h.replyError(callerID, models.ErrMalformedCommand)
		return
	}

	// Read-then-append: no store-side uniqueness, so check absence here.
	if existing, err := h.Directory.FindByID(ctx, targetID); err == nil {
		h.send(callerID, fmt.Sprintf("User %s sudah terdaftar sebagai %s.",
			targetID, existing.Alias))
		return
	} else if !errors.Is(err, models.ErrNotRegistered) {
		h.replyError(callerID, err)
		return
	}

	user := models.User{ID: targetID, Alias: alias, Cabang: cabang, Role: models.RoleUser}
	if err := h.Directory.Register(ctx, user); err != nil {
		h.replyError(callerID, err)
		return
	}

	zap.L().Info("user approved",
		zap.Int64(logger.FieldUserID, targetChatID),
		zap.Int64("approved_by", callerID))

	h.send(callerID, fmt.Sprintf("User %s disetujui sebagai %s (cabang %s).",
		targetID, alias, cabang))
	h.send(targetChatID, fmt.Sprintf("Pendaftaran Anda disetujui!\nAlias: %s\nCabang: %s\n"+
		"Gunakan /checkin untuk mulai kunjungan.", alias, cabang))
}
