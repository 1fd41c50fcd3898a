package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/events"
	"storefront/models"
	"storefront/repository"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordedMetric struct {
	name  string
	value float64
}

type fakeMetrics struct {
	mu      sync.Mutex
	records []recordedMetric
}

func (f *fakeMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	return f.RecordValue(context.Background(), name, 1, nil)
}

func (f *fakeMetrics) RecordValue(_ context.Context, name string, value float64, _ map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, recordedMetric{name: name, value: value})
	return nil
}

func (f *fakeMetrics) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.records {
		if r.name == name {
			n++
		}
	}
	return n
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, e events.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.err
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

const testCost = bcrypt.MinCost

func createUser(t *testing.T, store repository.Store, username string, admin bool) *models.User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), &models.User{
		Username: username,
		Password: "x",
		Email:    username + "@example.com",
		IsAdmin:  admin,
	})
	require.NoError(t, err)
	return u
}

func createProduct(t *testing.T, store repository.Store, name, price, sale string) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       models.Price(price),
		Category:    "mens",
		ImageURLs:   []string{"https://img.example.com/" + name + ".jpg"},
		InStock:     true,
	}
	if sale != "" {
		p.SalePrice = models.OptionalPrice(sale)
	}
	created, err := store.CreateProduct(context.Background(), p)
	require.NoError(t, err)
	return created
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

const (
	timeout = time.Second
	tick    = 10 * time.Millisecond
)
