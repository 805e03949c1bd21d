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

// Package auth owns the session lifecycle: login, signup, password changes
// and logout. It is the only writer of the persisted credential besides the
// transport's 401 teardown.
package auth

import (
	"context"
	"time"

	"github.com/ratehub/adminkit/pkg/clients/adminapi"
	"github.com/ratehub/adminkit/pkg/common/structs"
	"github.com/ratehub/adminkit/pkg/logger"
	"github.com/ratehub/adminkit/pkg/session"
)

// Result is the uniform mutation outcome handed to the shell. Message carries
// the server's own wording when present.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Service coordinates the admin API's auth endpoints with the credential
// store.
type Service struct {
	api      *adminapi.Client
	sessions session.Store
	ttl      time.Duration
}

// NewService creates the auth service. A zero ttl uses the credential
// store's 7-day default.
func NewService(api *adminapi.Client, sessions session.Store, ttl time.Duration) *Service {
	return &Service{api: api, sessions: sessions, ttl: ttl}
}

// Login authenticates and persists the returned session credential.
func (s *Service) Login(ctx context.Context, email, password string) (Result, *structs.Session) {
	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return Result{Success: false, Message: adminapi.ErrorMessage(err, "Login failed")}, nil
	}

	if err := s.sessions.Save(ctx, sess, s.ttl); err != nil {
		logger.Logger(ctx).WithError(err).Error("failed to persist session credential")
		return Result{Success: false, Message: "Login failed"}, nil
	}
	return Result{Success: true}, sess
}

// Signup registers an account and persists the tokenless identity payload.
func (s *Service) Signup(ctx context.Context, input adminapi.SignupInput) Result {
	sess, err := s.api.Signup(ctx, input)
	if err != nil {
		return Result{Success: false, Message: adminapi.ErrorMessage(err, "Signup failed")}
	}

	if err := s.sessions.Save(ctx, sess, s.ttl); err != nil {
		logger.Logger(ctx).WithError(err).Error("failed to persist session credential")
		return Result{Success: false, Message: "Signup failed"}
	}
	return Result{Success: true}
}

// ChangePassword updates the authenticated account's password.
func (s *Service) ChangePassword(ctx context.Context, current, updated string) Result {
	if err := s.api.UpdatePassword(ctx, current, updated); err != nil {
		return Result{Success: false, Message: adminapi.ErrorMessage(err, "Password update failed")}
	}
	return Result{Success: true}
}

// Current resolves the persisted session, if any. Corrupted credentials have
// already been discarded by the store and read as absent.
func (s *Service) Current(ctx context.Context) (*structs.Session, error) {
	return s.sessions.Current(ctx)
}

// Logout drops the persisted credential. The server keeps no client session
// state, so clearing locally is the whole operation.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}
