package eventlog

import (
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

// auditWindow pads the attribution lookup to allow for slow gateway delivery.
// Entries older than this cannot belong to the event being attributed.
const auditWindow = 5 * time.Second

// auditScanLimit caps how many recent entries are scanned when the matching
// entry may not be the newest one.
const auditScanLimit = 25

// findAuditEntry scans the guild audit log, newest first, for a recent entry
// of the given type targeting the given ID. The API can return entries from
// outside the requested range, so the window is enforced on entry timestamps
// and the scan stops at the first entry past it.
func (h *Handler) findAuditEntry(
	client bot.Client,
	auditType discord.AuditLogEvent,
	targetID snowflake.ID,
	limit int,
) (*discord.AuditLogEntry, bool) {
	auditLog, err := client.Rest().GetAuditLog(h.guildID, 0, auditType, 0, 0, limit)
	if err != nil {
		h.logger.Warn("Failed to fetch audit log",
			zap.Int("auditType", int(auditType)),
			zap.Error(err))

		return nil, false
	}

	cutoff := time.Now().Add(-auditWindow)

	for i := range auditLog.AuditLogEntries {
		entry := auditLog.AuditLogEntries[i]

		if entry.ID.Time().Before(cutoff) {
			break
		}

		if entry.TargetID != nil && *entry.TargetID == targetID {
			return &entry, true
		}
	}

	return nil, false
}

func auditReason(entry *discord.AuditLogEntry) string {
	if entry.Reason == nil {
		return ""
	}

	return *entry.Reason
}
