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

	"github.com/ratehub/adminkit/pkg/common/structs"
	"github.com/ratehub/adminkit/pkg/logger"
)

// SignupInput is the payload for POST /auth/signup.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address,omitempty"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login exchanges credentials for a session payload including the bearer
// token. A 401 here is the caller's to handle; the transport exempts auth
// endpoints from the global teardown.
func (c *Client) Login(ctx context.Context, email, password string) (*structs.Session, error) {
	log := logger.Logger(ctx).WithField("service", "adminapi")
	log.Info("logging in")

	var sess structs.Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &sess); err != nil {
		log.WithError(err).Error("login failed")
		return nil, err
	}
	return &sess, nil
}

// Signup registers a new account. The response carries the identity but no
// token; the caller logs in separately.
func (c *Client) Signup(ctx context.Context, input SignupInput) (*structs.Session, error) {
	log := logger.Logger(ctx).WithField("service", "adminapi")
	log.Info("signing up")

	var sess structs.Session
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, input, &sess); err != nil {
		log.WithError(err).Error("signup failed")
		return nil, err
	}
	return &sess, nil
}

// UpdatePassword changes the authenticated account's password.
func (c *Client) UpdatePassword(ctx context.Context, current, updated string) error {
	log := logger.Logger(ctx).WithField("service", "adminapi")
	log.Info("updating password")

	req := updatePasswordRequest{CurrentPassword: current, NewPassword: updated}
	if err := c.do(ctx, http.MethodPut, "/auth/update-password", nil, req, nil); err != nil {
		log.WithError(err).Error("password update failed")
		return err
	}
	return nil
}
