// internal/service/engine.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"bank-console/internal/bankio"
	"bank-console/internal/domain"
	"bank-console/internal/repository"
	"bank-console/internal/util"
)

// handlerFunc runs one operation. Rejections are returned as
// *util.ActionRejectedError; anything else ends the session.
type handlerFunc func(ctx context.Context, req domain.Request) error

// Engine is the console's dispatch loop. It is not safe for concurrent use;
// one Engine serves one interactive session.
type Engine struct {
	io       bankio.IO
	store    repository.Store
	logger   *slog.Logger
	now      func() time.Time
	handlers map[domain.RequestKind]handlerFunc

	current domain.UserProfile
	running bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithClock sets the clock used to stamp audit records.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a running Engine with no one logged in. Only QUIT, end
// of input or a lost store stop it.
func NewEngine(port bankio.IO, store repository.Store, opts ...Option) *Engine {
	e := &Engine{
		io:      port,
		store:   store,
		logger:  util.GetLogger(),
		now:     time.Now,
		current: domain.NoUser(),
		running: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.handlers = map[domain.RequestKind]handlerFunc{
		domain.RequestRegisterUser:       e.handleRegisterUser,
		domain.RequestLogIn:              e.handleLogIn,
		domain.RequestLogOut:             e.handleLogOut,
		domain.RequestQuit:               e.handleQuit,
		domain.RequestCreateEmployee:     e.handleCreateStaff(domain.RoleEmployee, MsgEmployeeCreated),
		domain.RequestCreateAdmin:        e.handleCreateStaff(domain.RoleAdmin, MsgAdminCreated),
		domain.RequestApplyOpenAccount:   e.handleApplyOpenAccount,
		domain.RequestApproveOpenAccount: e.handleReviewApplication(true),
		domain.RequestDenyOpenAccount:    e.handleReviewApplication(false),
		domain.RequestCloseAccount:       e.handleCloseAccount,
		domain.RequestAddAccountOwner:    e.handleAddAccountOwner,
		domain.RequestRemoveAccountOwner: e.handleRemoveAccountOwner,
		domain.RequestDeposit:            e.handleDeposit,
		domain.RequestWithdraw:           e.handleWithdraw,
		domain.RequestTransfer:           e.handleTransfer,
		domain.RequestViewAccounts:       e.handleViewAccounts,
		domain.RequestViewUsers:          e.handleViewUsers,
		domain.RequestViewTransactions:   e.handleViewTransactions,
	}
	return e
}

// Principal returns the currently logged-in profile, or domain.NoUser().
func (e *Engine) Principal() domain.UserProfile {
	return e.current.Clone()
}

// Running reports whether the loop would continue.
func (e *Engine) Running() bool {
	return e.running
}

// Start shows the welcome banner and runs the loop until QUIT, end of input,
// or a store failure. The returned error is non-nil only in the last case.
func (e *Engine) Start(ctx context.Context) error {
	e.running = true
	e.logger.Info("Console session started", "store", e.store.Name())
	e.io.DisplayBanner(MsgWelcome)

	for e.running {
		if err := e.Step(ctx); err != nil {
			e.logger.Error("Console session aborted", "error", err)
			return err
		}
	}
	e.logger.Info("Console session ended")
	return nil
}

// Step runs one iteration: banner, menu, request, dispatch, refresh.
func (e *Engine) Step(ctx context.Context) error {
	e.io.DisplayText(e.statusLine())

	menu := MenuFor(e.current)
	req, err := e.io.Prompt(ctx, menu)
	if err != nil {
		e.running = false
		if errors.Is(err, io.EOF) {
			e.logger.Info("Input closed; ending session")
			return nil
		}
		return fmt.Errorf("read request: %w", err)
	}

	if !Allowed(menu, req.Kind) {
		e.logger.Info("Request not on menu", "kind", req.Kind, "principal", e.current.ID)
		e.io.DisplayText(MsgNoPermission)
		return nil
	}

	e.logger.Debug("Dispatching request", "kind", req.Kind, "principal", e.current.ID)
	err = e.handlers[req.Kind](ctx, req)
	if err == nil {
		err = e.refreshPrincipal(ctx)
	}
	return e.settle(req, err)
}

// settle turns a handler outcome into operator output.
func (e *Engine) settle(req domain.Request, err error) error {
	if err == nil {
		return nil
	}
	if rej, ok := util.AsRejection(err); ok {
		e.logger.Info("Request rejected", "kind", req.Kind, "principal", e.current.ID, "reason", rej.Message)
		e.io.DisplayText(rej.Message)
		return nil
	}
	e.io.DisplayText(MsgStoreLost)
	e.running = false
	return fmt.Errorf("%s: %w", req.Kind, err)
}

// refreshPrincipal re-reads the logged-in profile so changes made by the
// last operation show up in the next menu.
func (e *Engine) refreshPrincipal(ctx context.Context) error {
	if e.current.IsNone() {
		return nil
	}
	p, err := e.store.ReadUserProfile(ctx, e.current.ID)
	if errors.Is(err, util.ErrNotFound) {
		e.logger.Warn("Logged-in profile vanished from store", "user_id", e.current.ID)
		e.current = domain.NoUser()
		return nil
	}
	if err != nil {
		return err
	}
	e.current = p
	return nil
}

func (e *Engine) statusLine() string {
	if e.current.IsNone() {
		return MsgNotLoggedIn
	}
	return MsgLoggedInAs + e.current.Username
}

// isCustomer reports whether ownership guards apply to the principal.
func (e *Engine) isCustomer() bool {
	return e.current.Role == domain.RoleCustomer
}

// requireRole rejects the request unless the principal holds one of roles.
func (e *Engine) requireRole(roles ...domain.Role) error {
	for _, r := range roles {
		if e.current.Role == r && !e.current.IsNone() {
			return nil
		}
	}
	return util.Reject(MsgNoPermission)
}
