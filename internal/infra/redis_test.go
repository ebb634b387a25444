package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisEmptyURLDisablesClient(t *testing.T) {
	for _, url := range []string{"", "   "} {
		rdb, err := NewRedis(url)
		require.NoError(t, err)
		assert.Nil(t, rdb, "url %q should disable redis", url)
	}
}

func TestNewRedisRejectsMalformedURL(t *testing.T) {
	rdb, err := NewRedis("://not-a-redis-url")
	require.Error(t, err)
	assert.Nil(t, rdb)
}
