package translate

import (
	"fmt"

	"github.com/mgpai22/voiceover/internal/subtitle"
)

// one item per non-empty entry of the store
func ItemsFromStore(store *subtitle.Store) []TranslationItem {
	entries := store.Entries()
	items := make([]TranslationItem, 0, len(entries))
	for i, e := range entries {
		if e.Text == "" {
			continue
		}
		items = append(items, TranslationItem{Index: i, Text: e.Text})
	}
	return items
}

// Apply writes results back through the store. With overlay set the
// translation is placed under the original text instead of replacing it.
func Apply(
	store *subtitle.Store,
	results []TranslationResult,
	overlay bool,
) error {
	entries := store.Entries()
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(entries) {
			return fmt.Errorf(
				"translation for entry %d: %w",
				r.Index+1,
				subtitle.ErrIndexOutOfRange,
			)
		}
	}

	for _, r := range results {
		text := r.Text
		if overlay {
			text = r.Text + "\n" + entries[r.Index].Text
		}
		if err := store.UpdateText(r.Index, text); err != nil {
			return fmt.Errorf("failed to apply translation: %w", err)
		}
	}
	return nil
}
