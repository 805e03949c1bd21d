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
	"context"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ratehub/adminkit/internal/dashboard"
	"github.com/ratehub/adminkit/pkg/cache/inmemory"
	"github.com/ratehub/adminkit/pkg/clients/adminapi"
	"github.com/ratehub/adminkit/pkg/common/structs"
	"github.com/ratehub/adminkit/pkg/session"
	"github.com/ratehub/adminkit/pkg/transport"
)

var _ = Describe("Orchestrator", func() {
	var (
		ctx      context.Context
		api      *fakeAdminAPI
		sessions session.Store
		orch     *dashboard.Orchestrator
	)

	saveSession := func(role structs.Role, token string) {
		err := sessions.Save(ctx, &structs.Session{
			ID: 99, Name: "Tester", Email: "tester@example.com", Role: role, Token: token,
		}, 0)
		Expect(err).NotTo(HaveOccurred())
	}

	availableOwnerIDs := func() []int {
		owners := orch.AvailableOwners()
		ids := make([]int, 0, len(owners))
		for _, owner := range owners {
			ids = append(ids, owner.ID)
		}
		return ids
	}

	BeforeEach(func() {
		ctx = context.Background()
		api = newFakeAdminAPI()
		DeferCleanup(api.Close)

		c, err := inmemory.NewCache(nil)
		Expect(err).NotTo(HaveOccurred())
		sessions = session.New(c)

		rt := transport.NewAuthRoundTripper(transport.Options{Sessions: sessions})
		client := adminapi.New(api.URL(), transport.NewHTTPClient(5*time.Second, rt))
		orch = dashboard.New(client, sessions)
	})

	Describe("role guard", func() {
		It("ignores fetches without a session", func() {
			orch.FetchUsers(ctx, structs.UserFilters{})
			Expect(orch.Users()).To(BeEmpty())
			Expect(api.callCount("GET /admin/users")).To(BeZero())
		})

		It("ignores fetches for non-admin sessions", func() {
			saveSession(structs.RoleUser, "tok")
			orch.FetchStores(ctx)
			Expect(orch.Stores()).To(BeEmpty())
			Expect(api.callCount("GET /admin/stores")).To(BeZero())
		})

		It("ignores admin sessions without a token", func() {
			saveSession(structs.RoleAdmin, "")
			orch.Bootstrap(ctx)
			Expect(api.callCount("GET /admin/dashboard")).To(BeZero())
		})

		It("rejects mutations without an admin session", func() {
			saveSession(structs.RoleUser, "tok")
			res := orch.CreateUser(ctx, structs.CreateUserInput{
				Name: "X", Email: "x@y.com", Password: "pw", Role: structs.RoleUser,
			})
			Expect(res.Success).To(BeFalse())
			Expect(api.callCount("POST /admin/users")).To(BeZero())
		})
	})

	Describe("Bootstrap", func() {
		BeforeEach(func() {
			saveSession(structs.RoleAdmin, "tok")
		})

		It("loads the five admin collections", func() {
			orch.Bootstrap(ctx)

			Expect(orch.Stats().TotalUsers).To(Equal(2))
			Expect(orch.Users()).To(HaveLen(2))
			Expect(orch.StoreOwners()).To(HaveLen(2))
			Expect(orch.Admins()).To(HaveLen(1))
			Expect(orch.Stores()).To(HaveLen(1))

			// available owners load on demand, not at bootstrap
			Expect(api.callCount("GET /admin/available-owners")).To(BeZero())
		})

		It("runs only once per admin session", func() {
			orch.Bootstrap(ctx)
			orch.Bootstrap(ctx)
			Expect(api.callCount("GET /admin/users")).To(Equal(1))
		})

		It("does not consume the single run while unauthenticated", func() {
			Expect(sessions.Clear(ctx)).To(Succeed())
			orch.Bootstrap(ctx)
			Expect(api.callCount("GET /admin/users")).To(BeZero())

			saveSession(structs.RoleAdmin, "tok")
			orch.Bootstrap(ctx)
			Expect(api.callCount("GET /admin/users")).To(Equal(1))
		})

		It("bootstraps again after Reset", func() {
			orch.Bootstrap(ctx)
			orch.Reset()
			Expect(orch.Users()).To(BeEmpty())

			orch.Bootstrap(ctx)
			Expect(api.callCount("GET /admin/users")).To(Equal(2))
		})
	})

	Describe("fetching", func() {
		BeforeEach(func() {
			saveSession(structs.RoleAdmin, "tok")
		})

		It("is idempotent", func() {
			orch.FetchUsers(ctx, structs.UserFilters{})
			first := orch.Users()
			orch.FetchUsers(ctx, structs.UserFilters{})
			Expect(orch.Users()).To(Equal(first))
		})

		It("retains last-known-good data on failure", func() {
			orch.FetchUsers(ctx, structs.UserFilters{})
			Expect(orch.Users()).To(HaveLen(2))

			api.failWith("GET /admin/users", http.StatusInternalServerError, "database unavailable")
			orch.FetchUsers(ctx, structs.UserFilters{})

			Expect(orch.Users()).To(HaveLen(2))
			Expect(orch.Err()).To(Equal("database unavailable"))
		})

		It("falls back to a default message when the failure carries none", func() {
			api.failWith("GET /admin/store-owners", http.StatusBadGateway, "")
			orch.FetchStoreOwners(ctx)
			Expect(orch.Err()).To(Equal("Failed to fetch store owners"))
		})

		It("clears the error slot on the next success", func() {
			api.failWith("GET /admin/users", http.StatusInternalServerError, "boom")
			orch.FetchUsers(ctx, structs.UserFilters{})
			Expect(orch.Err()).To(Equal("boom"))

			api.recover("GET /admin/users")
			orch.FetchUsers(ctx, structs.UserFilters{})
			Expect(orch.Err()).To(BeEmpty())
		})

		It("is not loading once fetches settle", func() {
			orch.FetchUsers(ctx, structs.UserFilters{})
			Expect(orch.Loading()).To(BeFalse())
		})
	})

	Describe("CreateUser", func() {
		BeforeEach(func() {
			saveSession(structs.RoleAdmin, "tok")
			orch.Bootstrap(ctx)
		})

		It("appends USER records optimistically", func() {
			res := orch.CreateUser(ctx, structs.CreateUserInput{
				Name: "Carl", Email: "carl@example.com", Password: "pw", Role: structs.RoleUser,
			})
			Expect(res.Success).To(BeTrue())

			users := orch.Users()
			Expect(users).To(HaveLen(3))
			Expect(users[2].Name).To(Equal("Carl"))
			// appended, not refetched
			Expect(api.callCount("GET /admin/users")).To(Equal(1))
			// stats refreshed afterward
			Expect(api.callCount("GET /admin/dashboard")).To(Equal(2))
			Expect(orch.Stats().TotalUsers).To(Equal(3))
		})

		It("refetches store owners instead of appending for STORE_OWNER", func() {
			res := orch.CreateUser(ctx, structs.CreateUserInput{
				Name: "Olive", Email: "olive@example.com", Password: "pw", Role: structs.RoleStoreOwner,
			})
			Expect(res.Success).To(BeTrue())

			// the users collection must not grow
			Expect(orch.Users()).To(HaveLen(2))
			// the store-owner collection was refetched with joined data
			Expect(api.callCount("GET /admin/store-owners")).To(Equal(2))
			Expect(orch.StoreOwners()).To(HaveLen(3))
		})

		It("appends ADMIN records to the admins collection", func() {
			res := orch.CreateUser(ctx, structs.CreateUserInput{
				Name: "Root", Email: "root@example.com", Password: "pw", Role: structs.RoleAdmin,
			})
			Expect(res.Success).To(BeTrue())

			admins := orch.Admins()
			Expect(admins).To(HaveLen(2))
			Expect(admins[1].Email).To(Equal("root@example.com"))
			Expect(api.callCount("GET /admin/admins")).To(Equal(1))
		})

		It("rejects invalid input before any network call", func() {
			res := orch.CreateUser(ctx, structs.CreateUserInput{
				Name: "No Email", Email: "not-an-email", Password: "pw", Role: structs.RoleUser,
			})
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(Equal("Invalid email format"))
			Expect(api.callCount("POST /admin/users")).To(BeZero())
		})

		It("returns the server message on failure without mutating collections", func() {
			api.failWith("POST /admin/users", http.StatusConflict, "Email already exists")

			res := orch.CreateUser(ctx, structs.CreateUserInput{
				Name: "Dup", Email: "dup@example.com", Password: "pw", Role: structs.RoleUser,
			})
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(Equal("Email already exists"))
			Expect(orch.Users()).To(HaveLen(2))
		})
	})

	Describe("CreateStore", func() {
		BeforeEach(func() {
			saveSession(structs.RoleAdmin, "tok")
			orch.Bootstrap(ctx)
			orch.FetchAvailableOwners(ctx)
		})

		It("appends the store and cascades the invalidation", func() {
			Expect(availableOwnerIDs()).To(ContainElement(4))

			res := orch.CreateStore(ctx, structs.CreateStoreInput{
				Name:    "Owen's Outstanding Outdoor Outlet",
				Address: "4 Owner Ave",
				OwnerID: 4,
			})
			Expect(res.Success).To(BeTrue())

			Expect(orch.Stores()).To(HaveLen(2))

			// the chosen owner left the available set
			Expect(availableOwnerIDs()).NotTo(ContainElement(4))

			// the owner's joined store field was refreshed
			owners := orch.StoreOwners()
			var owen *structs.StoreOwner
			for i := range owners {
				if owners[i].ID == 4 {
					owen = &owners[i]
				}
			}
			Expect(owen).NotTo(BeNil())
			Expect(owen.Store).NotTo(BeNil())
			Expect(owen.Store.Name).To(Equal("Owen's Outstanding Outdoor Outlet"))

			Expect(orch.Stats().TotalStores).To(Equal(2))
		})

		It("validates the store name length", func() {
			res := orch.CreateStore(ctx, structs.CreateStoreInput{
				Name: "Too short", Address: "4 Owner Ave", OwnerID: 4,
			})
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(ContainSubstring("between 20 and 60 characters"))
			Expect(api.callCount("POST /admin/stores")).To(BeZero())
		})

		It("requires an owner", func() {
			res := orch.CreateStore(ctx, structs.CreateStoreInput{
				Name: "A Store Name That Is Long Enough", Address: "4 Owner Ave",
			})
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(Equal("Please select a store owner"))
		})

		It("returns the server message on failure without touching the cache", func() {
			api.failWith("POST /admin/stores", http.StatusConflict, "Owner already has a store")

			res := orch.CreateStore(ctx, structs.CreateStoreInput{
				Name: "A Store Name That Is Long Enough", Address: "4 Owner Ave", OwnerID: 4,
			})
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(Equal("Owner already has a store"))
			Expect(orch.Stores()).To(HaveLen(1))
			Expect(availableOwnerIDs()).To(ContainElement(4))
		})
	})
})
