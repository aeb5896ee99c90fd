// Package drafts keeps the per-user in-progress prompt edit in local
// key-value storage so an interrupted editing session can be resumed. The
// storage backend is an external collaborator behind a narrow interface.
package drafts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// KV is the slice of local storage the draft manager needs
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// Manager owns the draft lifecycle: save while editing, load on resume,
// clear on successful publish.
type Manager struct {
	kv  KV
	log *zap.Logger
}

// NewManager creates a Manager on top of the given storage
func NewManager(kv KV, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{kv: kv, log: log}
}

func draftKey(userID uint) string {
	return fmt.Sprintf("draft:%d", userID)
}

// Save persists the draft under its owner's key, assigning an id and
// stamping LastSaved. One draft per user: a newer save supersedes the old.
func (m *Manager) Save(draft models.Draft) (models.Draft, error) {
	if draft.UserID == 0 {
		return draft, fmt.Errorf("draft has no owner")
	}
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	draft.LastSaved = time.Now()

	raw, err := json.Marshal(draft)
	if err != nil {
		return draft, fmt.Errorf("failed to encode draft: %w", err)
	}
	m.kv.Set(draftKey(draft.UserID), string(raw))
	m.log.Debug("draft saved", zap.Uint("user_id", draft.UserID), zap.String("draft_id", draft.ID))
	return draft, nil
}

// Load retrieves the user's draft, or nil when none exists. A corrupt
// stored value is discarded rather than surfaced.
func (m *Manager) Load(userID uint) *models.Draft {
	raw, ok := m.kv.Get(draftKey(userID))
	if !ok {
		return nil
	}

	var draft models.Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		m.log.Warn("discarding corrupt draft", zap.Uint("user_id", userID), zap.Error(err))
		m.kv.Remove(draftKey(userID))
		return nil
	}
	return &draft
}

// Clear removes the user's draft, called after a successful publish
func (m *Manager) Clear(userID uint) {
	m.kv.Remove(draftKey(userID))
}
