package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ID prefixes per entity kind. The human-readable shapes follow the
// original registry convention; the random part is drawn from a UUID
// rather than a short pseudo-random suffix.
func newAssetID() string {
	return "AST-" + randomSuffix(5)
}

func newStockID() string {
	return "STK-" + randomSuffix(5)
}

func newOrderID(now time.Time) string {
	seq := uuid.New().ID() % 1000
	return fmt.Sprintf("OS-%d-%03d", now.Year(), seq)
}

func newScheduleID(now time.Time) string {
	return fmt.Sprintf("SCH-%d", now.UnixMilli())
}

func newEventID(now time.Time) string {
	return fmt.Sprintf("EV-%d", now.UnixMilli())
}

// ChecklistIDForAsset derives the companion checklist item id for an asset
func ChecklistIDForAsset(assetID string) string {
	return "CHK-" + assetID
}

func randomSuffix(n int) string {
	s := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if len(s) > n {
		s = s[:n]
	}
	return s
}
