package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysOnlySetVariables(t *testing.T) {
	t.Setenv("FACTKEEPER_HTTP_ADDR", ":9090")
	t.Setenv("FACTKEEPER_ADMIN_TOKEN_TTL", "45m")
	t.Setenv("FACTKEEPER_S3_BUCKET", "snapshots")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":9090", c.EndpointAddrHTTP)
	assert.Equal(t, 45*time.Minute, c.AdminTokenValidityDuration)
	assert.Equal(t, "snapshots", c.S3Bucket)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, "factkeeper", c.KeyPrefix)
}

func TestParseEnv_BadDurationPanics(t *testing.T) {
	t.Setenv("FACTKEEPER_ADMIN_TOKEN_TTL", "forever")

	c := &Config{}
	require.Panics(t, func() { parseEnv(c) })
}
