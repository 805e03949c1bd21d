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

package adminapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ratehub/adminkit/pkg/common/structs"
	"github.com/ratehub/adminkit/pkg/logger"
)

// FetchStats returns the dashboard aggregate counters.
func (c *Client) FetchStats(ctx context.Context) (*structs.Stats, error) {
	log := logger.Logger(ctx).WithField("service", "adminapi")
	log.Info("fetching dashboard stats")

	var stats structs.Stats
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, nil, &stats); err != nil {
		log.WithError(err).Error("error fetching dashboard stats")
		return nil, err
	}
	return &stats, nil
}

// ListUsers returns normal users, optionally narrowed by server-side filters.
func (c *Client) ListUsers(ctx context.Context, filters structs.UserFilters) ([]structs.User, error) {
	log := logger.Logger(ctx).WithField("service", "adminapi")
	log.Info("fetching users")

	query := url.Values{}
	if filters.Name != "" {
		query.Set("name", filters.Name)
	}
	if filters.Email != "" {
		query.Set("email", filters.Email)
	}
	if filters.Address != "" {
		query.Set("address", filters.Address)
	}
	if filters.Role != "" {
		query.Set("role", string(filters.Role))
	}

	var users []structs.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", query, nil, &users); err != nil {
		log.WithError(err).Error("error fetching users")
		return nil, err
	}
	log.WithField("total_user_count", len(users)).Info("found users")
	return users, nil
}

// ListStoreOwners returns store-owner users with their store joined in.
func (c *Client) ListStoreOwners(ctx context.Context) ([]structs.StoreOwner, error) {
	log := logger.Logger(ctx).WithField("service", "adminapi")
	log.Info("fetching store owners")

	var owners []structs.StoreOwner
	if err := c.do(ctx, http.MethodGet, "/admin/store-owners", nil, nil, &owners); err != nil {
		log.WithError(err).Error("error fetching store owners")
		return nil, err
	}
	return owners, nil
}

// ListAdmins returns system administrator records.
func (c *Client) ListAdmins(ctx context.Context) ([]structs.Admin, error) {
	log := logger.Logger(ctx).WithField("service", "adminapi")
	log.Info("fetching admins")

	var admins []structs.Admin
	if err := c.do(ctx, http.MethodGet, "/admin/admins", nil, nil, &admins); err != nil {
		log.WithError(err).Error("error fetching admins")
		return nil, err
	}
	return admins, nil
}

// ListStores returns all stores.
func (c *Client) ListStores(ctx context.Context) ([]structs.Store, error) {
	log := logger.Logger(ctx).WithField("service", "adminapi")
	log.Info("fetching stores")

	var stores []structs.Store
	if err := c.do(ctx, http.MethodGet, "/admin/stores", nil, nil, &stores); err != nil {
		log.WithError(err).Error("error fetching stores")
		return nil, err
	}
	return stores, nil
}

// ListAvailableOwners returns store owners that have no store assigned yet.
// The set is owned by the server and must be refetched after store creation.
func (c *Client) ListAvailableOwners(ctx context.Context) ([]structs.AvailableOwner, error) {
	log := logger.Logger(ctx).WithField("service", "adminapi")
	log.Info("fetching available owners")

	var owners []structs.AvailableOwner
	if err := c.do(ctx, http.MethodGet, "/admin/available-owners", nil, nil, &owners); err != nil {
		log.WithError(err).Error("error fetching available owners")
		return nil, err
	}
	return owners, nil
}

// CreateUser submits a new user. The returned record is what the server
// persisted; note it carries no joined store data for store owners.
func (c *Client) CreateUser(ctx context.Context, input structs.CreateUserInput) (*structs.User, error) {
	log := logger.Logger(ctx).WithField("service", "adminapi")
	log.WithField("role", input.Role).Info("creating user")

	var user structs.User
	if err := c.do(ctx, http.MethodPost, "/admin/users", nil, input, &user); err != nil {
		log.WithError(err).Error("error creating user")
		return nil, err
	}
	return &user, nil
}

// CreateStore submits a new store for an existing store owner.
func (c *Client) CreateStore(ctx context.Context, input structs.CreateStoreInput) (*structs.Store, error) {
	log := logger.Logger(ctx).WithField("service", "adminapi")
	log.WithField("ownerId", input.OwnerID).Info("creating store")

	var store structs.Store
	if err := c.do(ctx, http.MethodPost, "/admin/stores", nil, input, &store); err != nil {
		log.WithError(err).Error("error creating store")
		return nil, err
	}
	return &store, nil
}
