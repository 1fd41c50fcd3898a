package cmd

import (
	"context"
	"testing"

	"storefront/config"
	"storefront/events"
	"storefront/models"
	"storefront/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Auth.BcryptCost = 4
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNewApp_MemoryStore(t *testing.T) {
	a, err := newApp(context.Background(), memoryConfig(t))
	require.NoError(t, err)
	defer a.close()

	assert.IsType(t, &repository.MemoryStore{}, a.store)
	assert.Nil(t, a.redis)
	assert.Nil(t, a.aws)
	assert.Nil(t, a.productCache())
	assert.Nil(t, a.presigner())
	assert.Nil(t, a.metrics())
	assert.IsType(t, events.Nop{}, a.publisher())

	require.NoError(t, a.seed(context.Background()))
	products, err := a.store.ListProducts(context.Background(), models.ProductFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, products)

	// Seeding twice leaves the store as it was.
	require.NoError(t, a.seed(context.Background()))
	again, err := a.store.ListProducts(context.Background(), models.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, again, len(products))
}

func TestPublisher_Kafka(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Kafka.Brokers = []string{"127.0.0.1:9092"}

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	defer a.close()

	assert.IsType(t, &events.KafkaPublisher{}, a.publisher())
}
