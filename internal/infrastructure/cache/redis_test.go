package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	sharedConfig "github.com/trackr-io/trackr/internal/shared/config"
)

func sharedConfigFor(host string, port int) sharedConfig.RedisConfig {
	return sharedConfig.RedisConfig{Enabled: true, Host: host, Port: port}
}

func TestNewRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Server().Addr()

	client, err := NewRedisClient(sharedConfigFor(addr.IP.String(), addr.Port), time.Second)
	require.NoError(t, err)
	require.NoError(t, client.Close())
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Server().Addr()
	mr.Close()

	_, err := NewRedisClient(sharedConfigFor(addr.IP.String(), addr.Port), 200*time.Millisecond)
	require.Error(t, err)
}
