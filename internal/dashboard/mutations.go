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

package dashboard

import (
	"context"
	"regexp"

	"github.com/ratehub/adminkit/pkg/clients/adminapi"
	"github.com/ratehub/adminkit/pkg/common/structs"
)

// MutationKind names a write operation for invalidation purposes.
type MutationKind string

const (
	MutationCreateUser       MutationKind = "create-user"
	MutationCreateStoreOwner MutationKind = "create-store-owner"
	MutationCreateAdmin      MutationKind = "create-admin"
	MutationCreateStore      MutationKind = "create-store"
)

// Collection names one cached entity collection.
type Collection string

const (
	CollectionStats           Collection = "stats"
	CollectionUsers           Collection = "users"
	CollectionStoreOwners     Collection = "store-owners"
	CollectionAdmins          Collection = "admins"
	CollectionStores          Collection = "stores"
	CollectionAvailableOwners Collection = "available-owners"
)

// mutationInvalidations is the static table of which cached collections each
// mutation kind stales. A mutation to one entity kind can stale fields
// embedded by reference in another kind's collection: creating a store stales
// the owners' joined store data and shrinks the available-owner set, so both
// get refetched. Stats depend on everything and follow every mutation.
var mutationInvalidations = map[MutationKind][]Collection{
	MutationCreateUser:       {CollectionStats},
	MutationCreateStoreOwner: {CollectionStoreOwners, CollectionStats},
	MutationCreateAdmin:      {CollectionStats},
	MutationCreateStore:      {CollectionStoreOwners, CollectionAvailableOwners, CollectionStats},
}

// invalidate refetches every collection the table maps the mutation to.
func (o *Orchestrator) invalidate(ctx context.Context, kind MutationKind) {
	for _, col := range mutationInvalidations[kind] {
		switch col {
		case CollectionStats:
			o.FetchStats(ctx)
		case CollectionUsers:
			o.FetchUsers(ctx, structs.UserFilters{})
		case CollectionStoreOwners:
			o.FetchStoreOwners(ctx)
		case CollectionAdmins:
			o.FetchAdmins(ctx)
		case CollectionStores:
			o.FetchStores(ctx)
		case CollectionAvailableOwners:
			o.FetchAvailableOwners(ctx)
		}
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateUserInput(input structs.CreateUserInput) string {
	if input.Name == "" {
		return "Name is required"
	}
	if !emailPattern.MatchString(input.Email) {
		return "Invalid email format"
	}
	if input.Password == "" {
		return "Password is required"
	}
	switch input.Role {
	case structs.RoleUser, structs.RoleStoreOwner, structs.RoleAdmin:
		return ""
	default:
		return "Invalid role"
	}
}

func validateStoreInput(input structs.CreateStoreInput) string {
	if len(input.Name) < 20 || len(input.Name) > 60 {
		return "Store name must be between 20 and 60 characters"
	}
	if input.Email != "" && !emailPattern.MatchString(input.Email) {
		return "Invalid email format"
	}
	if input.Address == "" {
		return "Address is required"
	}
	if len(input.Address) > 400 {
		return "Address must be 400 characters or less"
	}
	if input.OwnerID == 0 {
		return "Please select a store owner"
	}
	return ""
}

// CreateUser submits a new user and lands the result in the collection its
// role dictates:
//
//   - USER: the server-returned record is appended optimistically.
//   - STORE_OWNER: nothing is appended. The creation response carries none
//     of the joined store data the store-owner view renders, so the whole
//     collection is refetched instead.
//   - ADMIN: appended to the admins collection.
//
// Stats are refreshed afterward in every case. Creates are not idempotent;
// resubmission makes a duplicate server-side record.
func (o *Orchestrator) CreateUser(ctx context.Context, input structs.CreateUserInput) Result {
	if !o.isAdmin(ctx) {
		return Result{Success: false, Message: "Admin session required"}
	}
	if msg := validateUserInput(input); msg != "" {
		return Result{Success: false, Message: msg}
	}

	user, err := o.api.CreateUser(ctx, input)
	if err != nil {
		return Result{Success: false, Message: adminapi.ErrorMessage(err, "Failed to create user")}
	}

	switch input.Role {
	case structs.RoleUser:
		o.mu.Lock()
		o.users = append(o.users, *user)
		o.mu.Unlock()
		o.invalidate(ctx, MutationCreateUser)
	case structs.RoleStoreOwner:
		o.invalidate(ctx, MutationCreateStoreOwner)
	case structs.RoleAdmin:
		o.mu.Lock()
		o.admins = append(o.admins, structs.Admin{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Address: user.Address,
		})
		o.mu.Unlock()
		o.invalidate(ctx, MutationCreateAdmin)
	}

	return Result{Success: true}
}

// CreateStore submits a new store for an existing owner. On success the
// record is appended to the stores collection and the invalidation table
// refetches store owners (their joined store field is now stale), available
// owners (the chosen owner leaves the set) and stats.
func (o *Orchestrator) CreateStore(ctx context.Context, input structs.CreateStoreInput) Result {
	if !o.isAdmin(ctx) {
		return Result{Success: false, Message: "Admin session required"}
	}
	if msg := validateStoreInput(input); msg != "" {
		return Result{Success: false, Message: msg}
	}

	store, err := o.api.CreateStore(ctx, input)
	if err != nil {
		return Result{Success: false, Message: adminapi.ErrorMessage(err, "Failed to create store")}
	}

	o.mu.Lock()
	o.stores = append(o.stores, *store)
	o.mu.Unlock()
	o.invalidate(ctx, MutationCreateStore)

	return Result{Success: true}
}
