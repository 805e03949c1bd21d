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

package dashboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/ratehub/adminkit/pkg/common/structs"
)

type fakeFailure struct {
	status  int
	message string
}

// fakeAdminAPI is an in-memory stand-in for the remote admin API. It keeps
// per-endpoint call counters so specs can tell an optimistic append from a
// refetch, and lets individual endpoints be forced to fail.
type fakeAdminAPI struct {
	mu          sync.Mutex
	stats       structs.Stats
	users       []structs.User
	storeOwners []structs.StoreOwner
	admins      []structs.Admin
	stores      []structs.Store
	available   []structs.AvailableOwner
	calls       map[string]int
	failures    map[string]fakeFailure
	nextID      int

	srv *httptest.Server
}

func newFakeAdminAPI() *fakeAdminAPI {
	f := &fakeAdminAPI{
		stats: structs.Stats{TotalUsers: 2, TotalStores: 1, TotalRatings: 5},
		users: []structs.User{
			{ID: 1, Name: "Alice", Email: "alice@example.com", Address: "1 First St", Role: structs.RoleUser},
			{ID: 2, Name: "Bob", Email: "bob@example.com", Address: "2 Second St", Role: structs.RoleUser},
		},
		admins: []structs.Admin{
			{ID: 3, Name: "Ada", Email: "ada@example.com"},
		},
		storeOwners: []structs.StoreOwner{
			{ID: 4, Name: "Owen", Email: "owen@example.com"},
			{ID: 5, Name: "Nora", Email: "nora@example.com", Store: &structs.OwnedStore{
				ID: 10, Name: "Nora's Neighborhood Grocery Store", Rating: 4.2,
			}},
		},
		stores: []structs.Store{
			{ID: 10, Name: "Nora's Neighborhood Grocery Store", Address: "9 Market Sq", Rating: 4.2, OwnerID: 5},
		},
		available: []structs.AvailableOwner{
			{ID: 4, Name: "Owen", Email: "owen@example.com"},
		},
		calls:    make(map[string]int),
		failures: make(map[string]fakeFailure),
		nextID:   100,
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeAdminAPI) Close() { f.srv.Close() }

func (f *fakeAdminAPI) URL() string { return f.srv.URL }

func (f *fakeAdminAPI) failWith(key string, status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[key] = fakeFailure{status: status, message: message}
}

func (f *fakeAdminAPI) recover(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failures, key)
}

func (f *fakeAdminAPI) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeAdminAPI) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[key]++

	if fail, ok := f.failures[key]; ok {
		w.WriteHeader(fail.status)
		if fail.message != "" {
			_ = json.NewEncoder(w).Encode(map[string]string{"message": fail.message})
		}
		return
	}

	switch key {
	case "GET /admin/dashboard":
		f.respond(w, f.stats)
	case "GET /admin/users":
		f.respond(w, f.users)
	case "GET /admin/store-owners":
		f.respond(w, f.storeOwners)
	case "GET /admin/admins":
		f.respond(w, f.admins)
	case "GET /admin/stores":
		f.respond(w, f.stores)
	case "GET /admin/available-owners":
		f.respond(w, f.available)
	case "POST /admin/users":
		f.createUser(w, r)
	case "POST /admin/stores":
		f.createStore(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAdminAPI) respond(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// createUser mimics the server: the created record lands in the matching
// backing collection, but the creation response never carries joined store
// data.
func (f *fakeAdminAPI) createUser(w http.ResponseWriter, r *http.Request) {
	var input structs.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.nextID++
	user := structs.User{
		ID:      f.nextID,
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		Role:    input.Role,
	}

	switch input.Role {
	case structs.RoleUser:
		f.users = append(f.users, user)
		f.stats.TotalUsers++
	case structs.RoleStoreOwner:
		f.storeOwners = append(f.storeOwners, structs.StoreOwner{
			ID: user.ID, Name: user.Name, Email: user.Email, Address: user.Address,
		})
		f.available = append(f.available, structs.AvailableOwner{
			ID: user.ID, Name: user.Name, Email: user.Email,
		})
	case structs.RoleAdmin:
		f.admins = append(f.admins, structs.Admin{
			ID: user.ID, Name: user.Name, Email: user.Email, Address: user.Address,
		})
	}

	w.WriteHeader(http.StatusCreated)
	f.respond(w, user)
}

// createStore mimics the server-side cascade: the store is attached to its
// owner and the owner leaves the available set.
func (f *fakeAdminAPI) createStore(w http.ResponseWriter, r *http.Request) {
	var input structs.CreateStoreInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.nextID++
	store := structs.Store{
		ID:      f.nextID,
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		OwnerID: input.OwnerID,
	}
	f.stores = append(f.stores, store)
	f.stats.TotalStores++

	for i := range f.storeOwners {
		if f.storeOwners[i].ID == input.OwnerID {
			f.storeOwners[i].Store = &structs.OwnedStore{
				ID: store.ID, Name: store.Name, Address: store.Address,
			}
		}
	}
	remaining := f.available[:0]
	for _, owner := range f.available {
		if owner.ID != input.OwnerID {
			remaining = append(remaining, owner)
		}
	}
	f.available = remaining

	w.WriteHeader(http.StatusCreated)
	f.respond(w, store)
}
