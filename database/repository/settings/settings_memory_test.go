package settingsRepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySettingsDefaultsAndUpdate(t *testing.T) {
	repo := NewMemorySettingsRepo()
	ctx := context.Background()

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, s.OpenForRequest)

	s, err = repo.SetOpenForRequest(ctx, false)
	require.NoError(t, err)
	assert.False(t, s.OpenForRequest)

	s, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.False(t, s.OpenForRequest)
}
