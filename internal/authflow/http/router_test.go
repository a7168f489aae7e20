package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tuskera/authflow/internal/authflow/service"
	"github.com/tuskera/authflow/internal/authflow/store/drivers/sqlite"
	"github.com/tuskera/authflow/pkg/cryptox"
	"github.com/tuskera/authflow/pkg/flowsdk"
	"github.com/tuskera/authflow/pkg/trustx"
)

// fakeNotifier records sent codes. Safe for concurrent handlers.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) SendCode(_ context.Context, _, code, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, code)
	return nil
}

func (f *fakeNotifier) lastCode(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

const testAdminToken = "test-admin-token"

func newTestServer(t *testing.T) (*httptest.Server, *fakeNotifier) {
	t.Helper()

	cryptox.SetPepperPath(t.TempDir() + "/pepper")

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := trustx.NewCodec([]byte("test-trust-secret"))
	require.NoError(t, err)

	notifier := &fakeNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter("test", st, logger)
	router.FlowService = &service.FlowService{Store: st, Notifier: notifier, Trust: codec}
	router.UserService = &service.UserService{Store: st}
	router.Cookies = CookieConfig{
		SessionTTL: 24 * time.Hour,
		TrustTTL:   7 * 24 * time.Hour,
	}
	router.AdminToken = testAdminToken
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, notifier
}

func newFlowClient(t *testing.T, srv *httptest.Server) *flowsdk.Client {
	t.Helper()
	client, err := flowsdk.NewClient(srv.URL)
	require.NoError(t, err)
	return client
}

func provisionUser(t *testing.T, srv *httptest.Server, username, password, email string) {
	t.Helper()

	admin := newFlowClient(t, srv)
	admin.AdminToken = testAdminToken
	_, err := admin.CreateUser(context.Background(), flowsdk.CreateUserRequest{
		Username: username,
		Password: password,
		Email:    email,
	})
	require.NoError(t, err)
}

func TestLoginFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	srv, notifier := newTestServer(t)
	provisionUser(t, srv, "alice", "pw-alice", "alice@example.com")

	// One client, one browser: the cookie jar carries session and trust.
	browser := newFlowClient(t, srv)

	login, err := browser.Login(ctx, "alice", "pw-alice")
	require.NoError(t, err)
	require.Equal(t, flowsdk.StateOTPPending, login.State)
	require.Equal(t, 1, notifier.count())

	verified, err := browser.Verify(ctx, notifier.lastCode(t))
	require.NoError(t, err)
	require.Equal(t, flowsdk.StateAuthenticated, verified.State)
	require.Equal(t, "alice", verified.User.Username)

	sess, err := browser.Session(ctx)
	require.NoError(t, err)
	require.Equal(t, flowsdk.StateAuthenticated, sess.State)
	require.NotNil(t, sess.User)

	require.NoError(t, browser.Logout(ctx))

	sess, err = browser.Session(ctx)
	require.NoError(t, err)
	require.Equal(t, flowsdk.StateUnauthenticated, sess.State)
	require.Nil(t, sess.User)

	// The trust cookie survived logout, so the next login skips the code.
	again, err := browser.Login(ctx, "alice", "pw-alice")
	require.NoError(t, err)
	require.Equal(t, flowsdk.StateAuthenticated, again.State)
	require.Equal(t, 1, notifier.count())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	provisionUser(t, srv, "alice", "pw-alice", "alice@example.com")

	browser := newFlowClient(t, srv)

	_, err := browser.Login(ctx, "alice", "wrong")
	var flowErr *flowsdk.FlowError
	require.ErrorAs(t, err, &flowErr)
	require.Equal(t, flowsdk.ErrorCodeInvalidCredentials, flowErr.Code)
	require.Equal(t, http.StatusUnauthorized, flowErr.StatusCode)
}

func TestLoginValidatesBody(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)

	browser := newFlowClient(t, srv)

	_, err := browser.Login(ctx, "", "")
	var flowErr *flowsdk.FlowError
	require.ErrorAs(t, err, &flowErr)
	require.Equal(t, flowsdk.ErrorCodeInvalidRequest, flowErr.Code)
}

func TestVerifyWrongCodeKeepsChallenge(t *testing.T) {
	ctx := context.Background()
	srv, notifier := newTestServer(t)
	provisionUser(t, srv, "alice", "pw-alice", "alice@example.com")

	browser := newFlowClient(t, srv)

	_, err := browser.Login(ctx, "alice", "pw-alice")
	require.NoError(t, err)

	_, err = browser.Verify(ctx, "000000")
	var flowErr *flowsdk.FlowError
	require.ErrorAs(t, err, &flowErr)
	require.Equal(t, flowsdk.ErrorCodeInvalidCode, flowErr.Code)

	// Still pending; a correct retry completes the flow.
	sess, err := browser.Session(ctx)
	require.NoError(t, err)
	require.Equal(t, flowsdk.StateOTPPending, sess.State)

	_, err = browser.Verify(ctx, notifier.lastCode(t))
	require.NoError(t, err)
}

func TestVerifyWithoutSession(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)

	browser := newFlowClient(t, srv)

	_, err := browser.Verify(ctx, "123456")
	var flowErr *flowsdk.FlowError
	require.ErrorAs(t, err, &flowErr)
	require.Equal(t, flowsdk.ErrorCodeSessionExpired, flowErr.Code)
}

func TestResendInvalidatesPreviousCode(t *testing.T) {
	ctx := context.Background()
	srv, notifier := newTestServer(t)
	provisionUser(t, srv, "alice", "pw-alice", "alice@example.com")

	browser := newFlowClient(t, srv)

	_, err := browser.Login(ctx, "alice", "pw-alice")
	require.NoError(t, err)
	oldCode := notifier.lastCode(t)

	res, err := browser.Resend(ctx)
	require.NoError(t, err)
	require.Equal(t, flowsdk.StateOTPPending, res.State)
	require.Equal(t, "alice@example.com", res.Email)
	require.Equal(t, 2, notifier.count())

	if oldCode != notifier.lastCode(t) {
		_, err = browser.Verify(ctx, oldCode)
		var flowErr *flowsdk.FlowError
		require.ErrorAs(t, err, &flowErr)
		require.Equal(t, flowsdk.ErrorCodeInvalidCode, flowErr.Code)
	}

	_, err = browser.Verify(ctx, notifier.lastCode(t))
	require.NoError(t, err)
}

func TestUserProvisioningRequiresAdminToken(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)

	req := flowsdk.CreateUserRequest{Username: "alice", Password: "pw"}

	t.Run("missing token", func(t *testing.T) {
		client := newFlowClient(t, srv)
		_, err := client.CreateUser(ctx, req)
		var flowErr *flowsdk.FlowError
		require.ErrorAs(t, err, &flowErr)
		require.Equal(t, flowsdk.ErrorCodeUnauthorized, flowErr.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		client := newFlowClient(t, srv)
		client.AdminToken = "wrong"
		_, err := client.CreateUser(ctx, req)
		var flowErr *flowsdk.FlowError
		require.ErrorAs(t, err, &flowErr)
		require.Equal(t, flowsdk.ErrorCodeUnauthorized, flowErr.Code)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		client := newFlowClient(t, srv)
		client.AdminToken = testAdminToken

		_, err := client.CreateUser(ctx, req)
		require.NoError(t, err)

		_, err = client.CreateUser(ctx, req)
		var flowErr *flowsdk.FlowError
		require.ErrorAs(t, err, &flowErr)
		require.Equal(t, http.StatusConflict, flowErr.StatusCode)
	})
}

func TestHealthEndpoints(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)

	client := newFlowClient(t, srv)
	require.NoError(t, client.Ready(ctx))

	resp, err := http.Get(srv.URL + "/livez")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginRateLimited(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	provisionUser(t, srv, "alice", "pw-alice", "alice@example.com")

	browser := newFlowClient(t, srv)

	// The strict profile allows 5 attempts per window from one address.
	var last error
	for range 6 {
		_, last = browser.Login(ctx, "alice", "wrong")
	}

	var flowErr *flowsdk.FlowError
	require.True(t, errors.As(last, &flowErr))
	require.Equal(t, http.StatusTooManyRequests, flowErr.StatusCode)
}
