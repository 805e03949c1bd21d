/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package dashboard holds the cached admin collections and is the only
// component allowed to mutate them. Fetches replace a collection wholesale;
// mutations append or refetch according to a static invalidation table.
package dashboard

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ratehub/adminkit/pkg/clients/adminapi"
	"github.com/ratehub/adminkit/pkg/common/structs"
	"github.com/ratehub/adminkit/pkg/logger"
	"github.com/ratehub/adminkit/pkg/session"
)

// Result is the uniform outcome shape for mutations.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Orchestrator is the single source of truth for the admin-visible
// collections. Every operation is a no-op unless the active session is an
// authenticated admin; the server remains authoritative, this guard is
// defense in depth only.
type Orchestrator struct {
	api      *adminapi.Client
	sessions session.Store

	// mu guards the cached collections and the shared loading/error slots.
	mu              sync.RWMutex
	stats           structs.Stats
	users           []structs.User
	storeOwners     []structs.StoreOwner
	admins          []structs.Admin
	stores          []structs.Store
	availableOwners []structs.AvailableOwner
	loading         int
	errMsg          string
	bootstrapped    bool
}

// New creates an orchestrator bound to the given API client and credential
// store.
func New(api *adminapi.Client, sessions session.Store) *Orchestrator {
	return &Orchestrator{api: api, sessions: sessions}
}

// isAdmin resolves the current session and reports whether authenticated
// admin calls may be issued. While authentication is still unresolved (no
// stored session) this is false, which keeps the bootstrap from firing
// before a token exists.
func (o *Orchestrator) isAdmin(ctx context.Context) bool {
	sess, err := o.sessions.Current(ctx)
	if err != nil {
		logger.Logger(ctx).WithError(err).Warn("could not resolve session")
		return false
	}
	return sess.IsAdmin()
}

func (o *Orchestrator) beginLoad() {
	o.mu.Lock()
	o.loading++
	o.mu.Unlock()
}

func (o *Orchestrator) endLoad() {
	o.mu.Lock()
	o.loading--
	o.mu.Unlock()
}

// recordError stores a fetch failure in the shared error slot. The previously
// cached collection is left untouched: last-known-good data keeps rendering.
func (o *Orchestrator) recordError(msg string) {
	o.mu.Lock()
	o.errMsg = msg
	o.mu.Unlock()
}

func (o *Orchestrator) clearError() {
	o.mu.Lock()
	o.errMsg = ""
	o.mu.Unlock()
}

// Bootstrap performs the initial concurrent load of all admin collections.
// It runs at most once per authenticated admin session and is skipped
// entirely while no admin session exists. Each fetch independently replaces
// only its own collection, so partial completion is safe.
func (o *Orchestrator) Bootstrap(ctx context.Context) {
	if !o.isAdmin(ctx) {
		return
	}

	o.mu.Lock()
	if o.bootstrapped {
		o.mu.Unlock()
		return
	}
	o.bootstrapped = true
	o.mu.Unlock()

	ctx = logger.WithRequestId(ctx, uuid.NewString())
	logger.Logger(ctx).Info("bootstrapping admin collections")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { o.FetchStats(gctx); return nil })
	g.Go(func() error { o.FetchUsers(gctx, structs.UserFilters{}); return nil })
	g.Go(func() error { o.FetchStoreOwners(gctx); return nil })
	g.Go(func() error { o.FetchAdmins(gctx); return nil })
	g.Go(func() error { o.FetchStores(gctx); return nil })
	_ = g.Wait()
}

// Reset drops all cached state so a future admin session bootstraps afresh.
// The shell calls this when the session is torn down.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats = structs.Stats{}
	o.users = nil
	o.storeOwners = nil
	o.admins = nil
	o.stores = nil
	o.availableOwners = nil
	o.errMsg = ""
	o.bootstrapped = false
}

// FetchStats refreshes the dashboard aggregate. Failures are absorbed into
// the shared error slot and never propagate to the rendering layer.
func (o *Orchestrator) FetchStats(ctx context.Context) {
	if !o.isAdmin(ctx) {
		return
	}
	o.beginLoad()
	defer o.endLoad()

	stats, err := o.api.FetchStats(ctx)
	if err != nil {
		o.recordError(adminapi.ErrorMessage(err, "Failed to fetch stats"))
		return
	}
	o.mu.Lock()
	o.stats = *stats
	o.mu.Unlock()
	o.clearError()
}

// FetchUsers refreshes the users collection, optionally filtered server-side.
func (o *Orchestrator) FetchUsers(ctx context.Context, filters structs.UserFilters) {
	if !o.isAdmin(ctx) {
		return
	}
	o.beginLoad()
	defer o.endLoad()

	users, err := o.api.ListUsers(ctx, filters)
	if err != nil {
		o.recordError(adminapi.ErrorMessage(err, "Failed to fetch users"))
		return
	}
	o.mu.Lock()
	o.users = users
	o.mu.Unlock()
	o.clearError()
}

// FetchStoreOwners refreshes the store-owner collection including joined
// store data.
func (o *Orchestrator) FetchStoreOwners(ctx context.Context) {
	if !o.isAdmin(ctx) {
		return
	}
	o.beginLoad()
	defer o.endLoad()

	owners, err := o.api.ListStoreOwners(ctx)
	if err != nil {
		o.recordError(adminapi.ErrorMessage(err, "Failed to fetch store owners"))
		return
	}
	o.mu.Lock()
	o.storeOwners = owners
	o.mu.Unlock()
	o.clearError()
}

// FetchAdmins refreshes the admins collection.
func (o *Orchestrator) FetchAdmins(ctx context.Context) {
	if !o.isAdmin(ctx) {
		return
	}
	o.beginLoad()
	defer o.endLoad()

	admins, err := o.api.ListAdmins(ctx)
	if err != nil {
		o.recordError(adminapi.ErrorMessage(err, "Failed to fetch admins"))
		return
	}
	o.mu.Lock()
	o.admins = admins
	o.mu.Unlock()
	o.clearError()
}

// FetchStores refreshes the stores collection.
func (o *Orchestrator) FetchStores(ctx context.Context) {
	if !o.isAdmin(ctx) {
		return
	}
	o.beginLoad()
	defer o.endLoad()

	stores, err := o.api.ListStores(ctx)
	if err != nil {
		o.recordError(adminapi.ErrorMessage(err, "Failed to fetch stores"))
		return
	}
	o.mu.Lock()
	o.stores = stores
	o.mu.Unlock()
	o.clearError()
}

// FetchAvailableOwners refreshes the set of store owners still lacking a
// store. Fetched on demand by the store-creation flow.
func (o *Orchestrator) FetchAvailableOwners(ctx context.Context) {
	if !o.isAdmin(ctx) {
		return
	}
	o.beginLoad()
	defer o.endLoad()

	owners, err := o.api.ListAvailableOwners(ctx)
	if err != nil {
		o.recordError(adminapi.ErrorMessage(err, "Failed to fetch available owners"))
		return
	}
	o.mu.Lock()
	o.availableOwners = owners
	o.mu.Unlock()
	o.clearError()
}

// Stats returns the cached dashboard aggregate.
func (o *Orchestrator) Stats() structs.Stats {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.stats
}

// Users returns a copy of the cached users collection.
func (o *Orchestrator) Users() []structs.User {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]structs.User, len(o.users))
	copy(out, o.users)
	return out
}

// StoreOwners returns a copy of the cached store-owner collection.
func (o *Orchestrator) StoreOwners() []structs.StoreOwner {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]structs.StoreOwner, len(o.storeOwners))
	copy(out, o.storeOwners)
	return out
}

// Admins returns a copy of the cached admins collection.
func (o *Orchestrator) Admins() []structs.Admin {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]structs.Admin, len(o.admins))
	copy(out, o.admins)
	return out
}

// Stores returns a copy of the cached stores collection.
func (o *Orchestrator) Stores() []structs.Store {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]structs.Store, len(o.stores))
	copy(out, o.stores)
	return out
}

// AvailableOwners returns a copy of the cached available-owner set.
func (o *Orchestrator) AvailableOwners() []structs.AvailableOwner {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]structs.AvailableOwner, len(o.availableOwners))
	copy(out, o.availableOwners)
	return out
}

// Loading reports whether any fetch is currently in flight.
func (o *Orchestrator) Loading() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.loading > 0
}

// Err returns the most recent fetch failure message, or "" when the last
// fetch succeeded.
func (o *Orchestrator) Err() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.errMsg
}
