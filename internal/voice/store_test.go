package voice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/copydesk/internal/kvstore"
	"github.com/jonathan/copydesk/internal/types"
)

func TestProfileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewProfileStore(kvstore.NewMemory())

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	s := run(t, Start{}, addEvent(prose(140)), addEvent(prose(200)), Analyze{},
		AnalysisSucceeded{Result: types.AnalysisResult{
			Profile:    types.VoiceProfile{Name: "Confident Mentor"},
			Confidence: 82,
		}}, Accept{})

	saved, err := store.SaveState(ctx, s)
	require.NoError(t, err)
	assert.False(t, saved.SavedAt.IsZero())

	got, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Confident Mentor", got.Result.Profile.Name)
	assert.Len(t, got.Samples, 2)
	assert.Equal(t, s.Samples[0].ID, got.Samples[0].ID)

	require.NoError(t, store.Clear(ctx))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProfileStore_SaveStateRequiresComplete(t *testing.T) {
	store := NewProfileStore(kvstore.NewMemory())
	s := run(t, Start{}, addEvent(prose(140)))

	_, err := store.SaveState(context.Background(), s)
	assert.ErrorContains(t, err, "not complete")
}

func TestProfileStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	require.NoError(t, mem.Set(ctx, profileKey, []byte("{")))

	_, err := NewProfileStore(mem).Load(ctx)
	assert.ErrorContains(t, err, "loading voice profile")
}
