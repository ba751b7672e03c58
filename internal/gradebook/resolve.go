package gradebook

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/rtdacademy/gradebook-api/internal/models"
)

// Historical course builds addressed assignments with a numeric-prefixed
// shorthand like "12l5_7"; the structure stores them as
// "assignment_l5_7". This is the only remap rule; anything else that
// fails a direct lookup is simply unconfigured.
var legacyItemID = regexp.MustCompile(`^\d+l(\d+)_(\d+)$`)

// ResolveItemConfig locates an item's configuration, trying the raw id
// first and then the one-shot legacy remap. Returns nil when the item is
// not configured; callers treat that as a zero-score placeholder, never
// as an error.
func (e *Engine) ResolveItemConfig(itemID string, structure map[string]models.ItemConfig) *models.ItemConfig {
	if cfg, ok := structure[itemID]; ok {
		return &cfg
	}

	if m := legacyItemID.FindStringSubmatch(itemID); m != nil {
		remapped := fmt.Sprintf("assignment_l%s_%s", m[1], m[2])
		if cfg, ok := structure[remapped]; ok {
			// Remaps must stay observable: a silent hit here could hide
			// an item scoring under the wrong id.
			e.logger.Warn("legacy item id remapped",
				zap.String("itemId", itemID),
				zap.String("remappedId", remapped))
			return &cfg
		}
	}

	e.logger.Warn("item not present in gradebook structure", zap.String("itemId", itemID))
	return nil
}
