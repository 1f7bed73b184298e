// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/holomush/shopfront/internal/gateway"
	"github.com/holomush/shopfront/internal/observability"
)

// mockMigrator implements Migrator for testing.
type mockMigrator struct {
	upFunc      func() error
	downFunc    func() error
	versionFunc func() (uint, bool, error)
	forceFunc   func(int) error
	stepsFunc   func(int) error
	pendingFunc func() ([]uint, error)
	appliedFunc func() ([]uint, error)
	closeFunc   func() error

	mu     sync.Mutex
	calls  []string
	closed bool
}

func (m *mockMigrator) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockMigrator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockMigrator) Up() error {
	m.record("up")
	if m.upFunc != nil {
		return m.upFunc()
	}
	return nil
}

func (m *mockMigrator) Down() error {
	m.record("down")
	if m.downFunc != nil {
		return m.downFunc()
	}
	return nil
}

func (m *mockMigrator) Version() (uint, bool, error) {
	m.record("version")
	if m.versionFunc != nil {
		return m.versionFunc()
	}
	return 3, false, nil
}

func (m *mockMigrator) Force(v int) error {
	m.record("force")
	if m.forceFunc != nil {
		return m.forceFunc(v)
	}
	return nil
}

func (m *mockMigrator) Steps(n int) error {
	m.record(fmt.Sprintf("steps %d", n))
	if m.stepsFunc != nil {
		return m.stepsFunc(n)
	}
	return nil
}

func (m *mockMigrator) PendingMigrations() ([]uint, error) {
	m.record("pending")
	if m.pendingFunc != nil {
		return m.pendingFunc()
	}
	return nil, nil
}

func (m *mockMigrator) AppliedMigrations() ([]uint, error) {
	m.record("applied")
	if m.appliedFunc != nil {
		return m.appliedFunc()
	}
	return []uint{1, 2, 3}, nil
}

func (m *mockMigrator) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

func (m *mockMigrator) factory() MigratorFactory {
	return func(string) (Migrator, error) { return m, nil }
}

// mockObservabilityServer implements ObservabilityServer for testing.
type mockObservabilityServer struct {
	startFunc func() (<-chan error, error)
	stopFunc  func(ctx context.Context) error
	metrics   *observability.Metrics

	mu      sync.Mutex
	stopped bool
}

func (m *mockObservabilityServer) Start() (<-chan error, error) {
	if m.startFunc != nil {
		return m.startFunc()
	}
	ch := make(chan error, 1)
	return ch, nil
}

func (m *mockObservabilityServer) Stop(ctx context.Context) error {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
	if m.stopFunc != nil {
		return m.stopFunc(ctx)
	}
	return nil
}

func (m *mockObservabilityServer) Addr() string {
	return "127.0.0.1:9100"
}

func (m *mockObservabilityServer) Metrics() *observability.Metrics {
	return m.metrics
}

func (m *mockObservabilityServer) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// mockGatewayServer implements GatewayServer for testing.
type mockGatewayServer struct {
	startFunc func() (<-chan error, error)
	stopFunc  func(ctx context.Context) error

	started chan struct{}
	once    sync.Once
	mu      sync.Mutex
	stopped bool
	routes  gateway.Routes
}

func newMockGatewayServer() *mockGatewayServer {
	return &mockGatewayServer{started: make(chan struct{})}
}

func (m *mockGatewayServer) Start() (<-chan error, error) {
	defer m.once.Do(func() { close(m.started) })
	if m.startFunc != nil {
		return m.startFunc()
	}
	ch := make(chan error, 1)
	return ch, nil
}

func (m *mockGatewayServer) Stop(ctx context.Context) error {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
	if m.stopFunc != nil {
		return m.stopFunc(ctx)
	}
	return nil
}

func (m *mockGatewayServer) Addr() string {
	return "127.0.0.1:8080"
}

func (m *mockGatewayServer) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

func (m *mockGatewayServer) factory() func(string, gateway.Routes, ...gateway.Option) (GatewayServer, error) {
	return func(_ string, routes gateway.Routes, _ ...gateway.Option) (GatewayServer, error) {
		m.mu.Lock()
		m.routes = routes
		m.mu.Unlock()
		return m, nil
	}
}
