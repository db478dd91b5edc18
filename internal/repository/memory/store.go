// Package memory provides in-process implementations of the repositories for tests and local runs.
package memory

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
)

var (
	_ db.Transactor    = (*Store)(nil)
	_ db.HealthChecker = (*Store)(nil)
)

// OutboxMsg is an outbox message as kept by the Store.
type OutboxMsg struct {
	ID           uuid.UUID
	Topic        string
	Headers      map[string]string
	Payload      json.RawMessage
	PartitionKey *string
	CreatedAt    time.Time
	ProcessedAt  *time.Time
	Error        *string
}

// Store holds products, orders and outbox messages in insertion order.
type Store struct {
	mu       sync.RWMutex
	products []model.Product
	orders   []model.Order
	outbox   []OutboxMsg
}

func NewStore() *Store {
	return &Store{}
}

// WithTx runs txFunc and restores the previous state when it fails. The DB handed to txFunc
// is nil; the repositories of this package ignore it. Concurrent transactions are not isolated.
func (s *Store) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	snapshot := s.snapshot()
	if err := txFunc(nil); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

func (s *Store) IsHealthy(context.Context) (bool, error) {
	return true, nil
}

// OutboxMessages returns a copy of every outbox message, processed or not.
func (s *Store) OutboxMessages() []OutboxMsg {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.outbox)
}

type state struct {
	products []model.Product
	orders   []model.Order
	outbox   []OutboxMsg
}

func (s *Store) snapshot() state {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := state{
		products: make([]model.Product, len(s.products)),
		orders:   make([]model.Order, len(s.orders)),
		outbox:   slices.Clone(s.outbox),
	}
	for i, p := range s.products {
		st.products[i] = p.Clone()
	}
	for i, o := range s.orders {
		st.orders[i] = o.Clone()
	}
	return st
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = st.products
	s.orders = st.orders
	s.outbox = st.outbox
}
