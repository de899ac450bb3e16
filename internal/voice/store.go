package voice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/copydesk/internal/kvstore"
	"github.com/jonathan/copydesk/internal/types"
)

const profileKey = "voice-profile"

// ProfileStore keeps the last accepted voice profile.
type ProfileStore struct {
	store kvstore.Store
	now   func() time.Time
}

// NewProfileStore creates a ProfileStore over s.
func NewProfileStore(s kvstore.Store) *ProfileStore {
	return &ProfileStore{store: s, now: time.Now}
}

// SaveState stores the profile of a completed wizard.
func (p *ProfileStore) SaveState(ctx context.Context, s State) (*types.SavedProfile, error) {
	if s.Step != StepComplete || s.Result == nil {
		return nil, fmt.Errorf("wizard is not complete (step %s)", s.Step)
	}
	return p.Save(ctx, *s.Result, s.Samples)
}

// Save replaces any stored profile.
func (p *ProfileStore) Save(ctx context.Context, result types.AnalysisResult, samples []types.Sample) (*types.SavedProfile, error) {
	saved := &types.SavedProfile{
		Result:  result,
		Samples: append([]types.Sample(nil), samples...),
		SavedAt: p.now().UTC(),
	}
	if err := kvstore.SetJSON(ctx, p.store, profileKey, saved); err != nil {
		return nil, fmt.Errorf("saving voice profile: %w", err)
	}
	return saved, nil
}

// Load returns the stored profile, or nil if none has been saved.
func (p *ProfileStore) Load(ctx context.Context) (*types.SavedProfile, error) {
	var saved types.SavedProfile
	err := kvstore.GetJSON(ctx, p.store, profileKey, &saved)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading voice profile: %w", err)
	}
	return &saved, nil
}

// Clear removes the stored profile.
func (p *ProfileStore) Clear(ctx context.Context) error {
	return p.store.Delete(ctx, profileKey)
}
