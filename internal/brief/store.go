package brief

import (
	"context"
	"errors"

	"github.com/jonathan/copydesk/internal/kvstore"
)

const draftKey = "brief-draft"

// KVDraftStore keeps the draft under a single key of a kvstore.Store.
type KVDraftStore struct {
	store kvstore.Store
}

// NewDraftStore creates a DraftStore over s.
func NewDraftStore(s kvstore.Store) *KVDraftStore {
	return &KVDraftStore{store: s}
}

// Save replaces the stored draft.
func (s *KVDraftStore) Save(ctx context.Context, d Draft) error {
	return kvstore.SetJSON(ctx, s.store, draftKey, d)
}

// Load returns the stored draft, or nil if there is none.
func (s *KVDraftStore) Load(ctx context.Context) (*Draft, error) {
	var d Draft
	err := kvstore.GetJSON(ctx, s.store, draftKey, &d)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Clear removes the stored draft.
func (s *KVDraftStore) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, draftKey)
}
