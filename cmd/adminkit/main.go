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

// adminkit is a thin CLI over the dashboard client: it logs in (or reuses
// the persisted credential), bootstraps the cached collections and prints
// the requested view.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ratehub/adminkit/internal/dashboard"
	"github.com/ratehub/adminkit/pkg/auth"
	"github.com/ratehub/adminkit/pkg/cache"
	"github.com/ratehub/adminkit/pkg/clients/adminapi"
	"github.com/ratehub/adminkit/pkg/config"
	"github.com/ratehub/adminkit/pkg/logger"
	"github.com/ratehub/adminkit/pkg/projection"
	"github.com/ratehub/adminkit/pkg/session"
	"github.com/ratehub/adminkit/pkg/transport"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to the config file")
		email      = flag.String("email", "", "login email (omit to reuse the stored session)")
		password   = flag.String("password", "", "login password")
		view       = flag.String("view", "users", "collection to print: users, admins, store-owners, stores")
		search     = flag.String("search", "", "search term applied to the view")
		sortField  = flag.String("sort", "name", "field to sort the view by")
		order      = flag.String("order", "asc", "sort order: asc or desc")
	)
	flag.Parse()

	if err := run(*configPath, *email, *password, *view, *search, *sortField, *order); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, email, password, view, search, sortField, order string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Setup(cfg.App.Environment, cfg.Log.Level)

	ctx := context.Background()
	log := logger.Logger(ctx)

	cacheClient, err := cache.New(&cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer func() { _ = cacheClient.Disconnect() }()

	sessions := session.New(cacheClient)

	invalidated := make(chan struct{}, 1)
	rt := transport.NewAuthRoundTripper(transport.Options{
		Sessions: sessions,
		OnSessionInvalid: func() {
			select {
			case invalidated <- struct{}{}:
			default:
			}
		},
	})
	api := adminapi.New(cfg.Server.BaseURL, transport.NewHTTPClient(cfg.Server.Timeout, rt))

	authSvc := auth.NewService(api, sessions, cfg.Session.TTL)
	orch := dashboard.New(api, sessions)

	if email != "" {
		res, sess := authSvc.Login(ctx, email, password)
		if !res.Success {
			return fmt.Errorf("login failed: %s", res.Message)
		}
		log.WithField("role", sess.Role).Info("logged in")
	} else {
		sess, err := sessions.Current(ctx)
		if err != nil {
			return fmt.Errorf("failed to read stored session: %w", err)
		}
		if sess == nil {
			return fmt.Errorf("no stored session, log in with -email and -password")
		}
	}

	orch.Bootstrap(ctx)

	select {
	case <-invalidated:
		orch.Reset()
		return fmt.Errorf("session invalidated by the server, log in again")
	default:
	}

	if msg := orch.Err(); msg != "" {
		log.WithField("error", msg).Warn("some collections failed to load")
	}

	stats := orch.Stats()
	fmt.Printf("users: %d  stores: %d  ratings: %d\n\n", stats.TotalUsers, stats.TotalStores, stats.TotalRatings)

	spec := projection.SortSpec{Field: sortField, Order: projection.Order(order)}
	printView(orch, view, search, spec)
	return nil
}

func printView(orch *dashboard.Orchestrator, view, search string, spec projection.SortSpec) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	switch view {
	case "admins":
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tADDRESS")
		for _, a := range projection.Project(orch.Admins(), search, spec, projection.AdminsView) {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", a.ID, a.Name, a.Email, a.Address)
		}
	case "store-owners":
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTORE")
		for _, o := range projection.Project(orch.StoreOwners(), search, spec, projection.StoreOwnersView) {
			storeName := "-"
			if o.Store != nil {
				storeName = o.Store.Name
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", o.ID, o.Name, o.Email, storeName)
		}
	case "stores":
		fmt.Fprintln(w, "ID\tNAME\tADDRESS\tRATING")
		for _, s := range projection.Project(orch.Stores(), search, spec, projection.StoresView) {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\n", s.ID, s.Name, s.Address, s.Rating)
		}
	default:
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tADDRESS")
		for _, u := range projection.Project(orch.Users(), search, spec, projection.UsersView) {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Address)
		}
	}
}
