package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
)

func TestPoolConfig(t *testing.T) {
	cfg := config.Postgres{
		Host:            "db.internal",
		Port:            5433,
		User:            "shop",
		Password:        "p@ss word",
		DB:              "sneakers",
		SSLMode:         "disable",
		ApplicationName: "shop-seed",
		MaxConns:        7,
		MinConns:        2,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
		ConnectTimeout:  3 * time.Second,
	}

	poolCfg, err := poolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(7), poolCfg.MaxConns)
	assert.Equal(t, int32(2), poolCfg.MinConns)
	assert.Equal(t, "db.internal", poolCfg.ConnConfig.Host)
	assert.Equal(t, uint16(5433), poolCfg.ConnConfig.Port)
	assert.Equal(t, "p@ss word", poolCfg.ConnConfig.Password)
	assert.Equal(t, "sneakers", poolCfg.ConnConfig.Database)
	assert.Equal(t, 3*time.Second, poolCfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, "shop-seed", poolCfg.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, poolCfg.ConnConfig.Tracer)
}
