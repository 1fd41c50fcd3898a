package repository_test

import (
	"context"
	"os"
	"testing"

	"storefront/repository"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStoreSuite runs the store contract against a real PostgreSQL database.
// It is skipped unless STOREFRONT_TEST_POSTGRES_DSN is set.
type GormStoreSuite struct {
	suite.Suite
	db    *gorm.DB
	store *repository.GormStore
}

func (s *GormStoreSuite) SetupSuite() {
	dsn := os.Getenv("STOREFRONT_TEST_POSTGRES_DSN")
	if dsn == "" {
		s.T().Skip("STOREFRONT_TEST_POSTGRES_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(s.T(), err)
	s.db = db
	s.store = repository.NewGormStore(db)
	require.NoError(s.T(), s.store.AutoMigrate(context.Background()))
}

func (s *GormStoreSuite) truncate() {
	err := s.db.Exec("TRUNCATE users, products, reviews, cart_items, orders, order_items RESTART IDENTITY").Error
	require.NoError(s.T(), err)
}

func (s *GormStoreSuite) TearDownSuite() {
	if s.db == nil {
		return
	}
	s.truncate()
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (s *GormStoreSuite) TestContract() {
	runStoreContract(s.T(), func(t *testing.T) repository.Store {
		s.truncate()
		return s.store
	})
}

func TestGormStoreSuite(t *testing.T) {
	suite.Run(t, new(GormStoreSuite))
}
