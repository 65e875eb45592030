package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationColumns(t *testing.T) {
	cfg := DefaultConfig()

	cols := cfg.RelationColumns([]string{
		"id", "sender_id", "recipient_id", "body", "created_at", "owner_user_id", "video_id",
	})
	assert.Equal(t, []string{"sender_id", "recipient_id", "owner_user_id"}, cols)
}

func TestRelationColumnsNoise(t *testing.T) {
	cfg := DefaultConfig()

	// Link keywords must sit at a name-segment start and the name must
	// end in id; lookalikes stay out.
	assert.Empty(t, cfg.RelationColumns([]string{"id", "photo_id", "identity", "sender_name"}))
}

func TestRelationPairs(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("messages table yields the forward pair only", func(t *testing.T) {
		pairs := cfg.RelationPairs([]string{"id", "sender_id", "recipient_id", "body"})
		require.Len(t, pairs, 1)

		assert.Equal(t, "sender_id", pairs[0].Source)
		assert.Equal(t, "recipient_id", pairs[0].Dest)
		assert.Equal(t, "sender_id->recipient_id", pairs[0].Subtype())
		assert.Equal(t, "sender_id,recipient_id", pairs[0].ColumnRef())
	})

	t.Run("fewer than two link columns yields nothing", func(t *testing.T) {
		assert.Nil(t, cfg.RelationPairs([]string{"id", "user_id", "body"}))
		assert.Nil(t, cfg.RelationPairs([]string{"id", "body"}))
	})

	t.Run("truncates to the configured pair budget", func(t *testing.T) {
		names := []string{"sender_id", "recipient_id", "owner_id", "peer_id"}
		pairs := cfg.RelationPairs(names)
		require.Len(t, pairs, cfg.MaxRelationPairs)
		assert.Equal(t, "sender_id", pairs[0].Source)
		assert.Equal(t, "recipient_id", pairs[0].Dest)
		assert.GreaterOrEqual(t, pairs[0].Score, pairs[1].Score)

		wide := *cfg
		wide.MaxRelationPairs = 100
		// 12 ordered pairs exist but only the vocabulary-scored ones survive.
		assert.Len(t, wide.RelationPairs(names), 8)
	})

	t.Run("reverse pair scores zero and is dropped", func(t *testing.T) {
		pairs := cfg.RelationPairs([]string{"from_id", "to_id"})
		require.Len(t, pairs, 1)
		assert.Equal(t, "from_id", pairs[0].Source)
		assert.Equal(t, "to_id", pairs[0].Dest)
	})
}
