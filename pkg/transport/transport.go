package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/gojek/heimdall/v7/httpclient"

	"github.com/ratehub/adminkit/pkg/logger"
	"github.com/ratehub/adminkit/pkg/session"
)

// Options wires the auth pipeline to its collaborators.
type Options struct {
	// Sessions supplies the bearer credential attached to outgoing requests.
	Sessions session.Store

	// Base performs the actual dispatch. Defaults to http.DefaultTransport.
	Base http.RoundTripper

	// PublicScreen reports whether the hosting shell currently shows a
	// public screen (login, signup, landing). A 401 observed there is the
	// caller's to handle; tearing the session down would loop the user
	// straight back to the screen they are already on.
	PublicScreen func() bool

	// OnSessionInvalid is the explicit session-invalidated signal. The
	// pipeline never navigates; the shell decides how to react.
	OnSessionInvalid func()
}

// AuthRoundTripper attaches the bearer credential to every outbound request
// and centrally reacts to authorization failures. It never retries: a request
// is dispatched exactly once and any retry policy belongs to the caller.
type AuthRoundTripper struct {
	opts Options
}

// NewAuthRoundTripper builds the session-aware pipeline.
func NewAuthRoundTripper(opts Options) *AuthRoundTripper {
	if opts.Base == nil {
		opts.Base = http.DefaultTransport
	}
	return &AuthRoundTripper{opts: opts}
}

func (t *AuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	// RoundTrippers must not mutate the caller's request.
	out := req.Clone(ctx)

	// Attach the credential when one exists; otherwise dispatch unmodified
	// and let the server decide.
	sess, err := t.opts.Sessions.Current(ctx)
	if err != nil {
		logger.Logger(ctx).WithError(err).Warn("could not read session credential, dispatching unauthenticated")
	}
	if sess != nil && sess.Token != "" {
		out.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := t.opts.Base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !t.exempt(out) {
		logger.Logger(ctx).WithField("path", out.URL.Path).Info("session invalidated by 401 response")
		if clearErr := t.opts.Sessions.Clear(ctx); clearErr != nil {
			logger.Logger(ctx).WithError(clearErr).Error("failed to clear session credential")
		}
		if t.opts.OnSessionInvalid != nil {
			t.opts.OnSessionInvalid()
		}
	}

	return resp, nil
}

// exempt reports whether a 401 on this request should be passed through
// untouched: authentication endpoints handle their own failures, and public
// screens must not trigger a teardown loop.
func (t *AuthRoundTripper) exempt(req *http.Request) bool {
	if strings.Contains(req.URL.Path, "/auth/") {
		return true
	}
	return t.opts.PublicScreen != nil && t.opts.PublicScreen()
}

// NewHTTPClient wraps the pipeline in a heimdall client with a hard timeout.
// No retrier is configured: a single 401 tears the session down rather than
// attempting a refresh, and transient failures surface to the caller.
func NewHTTPClient(timeout time.Duration, rt http.RoundTripper) *httpclient.Client {
	return httpclient.NewClient(
		httpclient.WithHTTPTimeout(timeout),
		httpclient.WithHTTPClient(&http.Client{
			Transport: rt,
			Timeout:   timeout,
		}),
	)
}

// Compile-time interface compliance checks
var _ http.RoundTripper = (*AuthRoundTripper)(nil)
