// internal/service/handlers_session.go
package service

import (
	"context"
	"errors"
	"fmt"

	"bank-console/internal/domain"
	"bank-console/internal/repository"
	"bank-console/internal/util"
)

func (e *Engine) handleRegisterUser(ctx context.Context, req domain.Request) error {
	username, password, err := credentials(req)
	if err != nil {
		return err
	}
	profile, err := e.createProfile(ctx, username, password, domain.RoleCustomer)
	if err != nil {
		return err
	}

	e.current = profile
	e.logger.Info("User registered", "user_id", profile.ID)
	e.io.DisplayText(MsgUserRegistered)
	e.audit(ctx, record(domain.TransactionUserRegistered, domain.NoID, domain.NoID, domain.NoID))
	return nil
}

// handleCreateStaff registers a profile with the given role on behalf of an admin.
func (e *Engine) handleCreateStaff(role domain.Role, success string) handlerFunc {
	return func(ctx context.Context, req domain.Request) error {
		if err := e.requireRole(domain.RoleAdmin); err != nil {
			return err
		}
		username, password, err := credentials(req)
		if err != nil {
			return err
		}
		profile, err := e.createProfile(ctx, username, password, role)
		if err != nil {
			return err
		}

		e.logger.Info("Staff profile created", "user_id", profile.ID, "role", role, "principal", e.current.ID)
		e.io.DisplayText(success)
		e.audit(ctx, record(domain.TransactionUserRegistered, domain.NoID, domain.NoID, domain.NoID))
		return nil
	}
}

func (e *Engine) createProfile(ctx context.Context, username, password string, role domain.Role) (domain.UserProfile, error) {
	free, err := e.store.IsUsernameFree(ctx, username)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if !free {
		return domain.UserProfile{}, util.Reject(MsgUsernameTaken)
	}
	top, err := e.store.HighestUserID(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}

	profile := domain.NewUserProfile(top+1, username, password, role)
	if err := e.store.Write(ctx, repository.Fresh(profile)); err != nil {
		return domain.UserProfile{}, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

func (e *Engine) handleLogIn(ctx context.Context, req domain.Request) error {
	username, password, err := credentials(req)
	if err != nil {
		return err
	}
	profile, err := e.store.ReadUserProfileByUsername(ctx, username)
	if errors.Is(err, util.ErrNotFound) {
		return util.Reject(MsgNoSuchUsername + username)
	}
	if err != nil {
		return err
	}
	if profile.Password != password {
		return util.Reject(MsgWrongPassword)
	}

	e.current = profile
	e.logger.Info("User logged in", "user_id", profile.ID, "role", profile.Role)
	e.io.DisplayText(MsgLoggedInAs + profile.Username)
	return nil
}

func (e *Engine) handleLogOut(_ context.Context, req domain.Request) error {
	if _, err := expectParams(req, 0); err != nil {
		return err
	}
	e.logger.Info("User logged out", "user_id", e.current.ID)
	e.current = domain.NoUser()
	e.io.DisplayText(MsgLoggingOut)
	return nil
}

func (e *Engine) handleQuit(_ context.Context, _ domain.Request) error {
	e.running = false
	e.io.DisplayText(MsgQuitting)
	return nil
}

func credentials(req domain.Request) (username, password string, err error) {
	p, err := expectParams(req, 2)
	if err != nil {
		return "", "", err
	}
	if username, err = p.credential(0); err != nil {
		return "", "", err
	}
	if password, err = p.credential(1); err != nil {
		return "", "", err
	}
	return username, password, nil
}

// loadProfile reads a profile, rejecting with the unknown-user message when absent.
func (e *Engine) loadProfile(ctx context.Context, id int64) (domain.UserProfile, error) {
	p, err := e.store.ReadUserProfile(ctx, id)
	if errors.Is(err, util.ErrNotFound) {
		return domain.UserProfile{}, util.Rejectf("%s%d", MsgNoSuchUserID, id)
	}
	return p, err
}

// loadAccount reads an account, rejecting with the unknown-account message when absent.
func (e *Engine) loadAccount(ctx context.Context, id int64) (domain.BankAccount, error) {
	a, err := e.store.ReadBankAccount(ctx, id)
	if errors.Is(err, util.ErrNotFound) {
		return domain.BankAccount{}, util.Rejectf("%s%d", MsgNoSuchAccountID, id)
	}
	return a, err
}
