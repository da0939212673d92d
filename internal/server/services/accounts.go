// Package services contains server-side business logic. AccountService
// handles signup and signin, profile reads and partial updates, password
// changes and the per-account settings.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/dmitrijs2005/accountkeeper/internal/server/passwords"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/accountkeeper/internal/server/validation"
	"github.com/google/uuid"
)

// TokenIssuer mints the access token returned by signup and signin.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type SignupInput struct {
	Name        string
	Email       string
	Password    string
	DateOfBirth string
}

// AuthResult is what a successful signup or signin hands back.
type AuthResult struct {
	Token   string
	Account *models.PublicAccount
}

// AccountService orchestrates validation, hashing, token issuance and the
// account store. Every read-modify-write is last-write-wins.
type AccountService struct {
	repo   accounts.Repository
	hasher passwords.Hasher
	tokens TokenIssuer
	logger logging.Logger
	now    func() time.Time
	newID  func() string
}

// NewAccountService wires the service. A nil clock defaults to time.Now.
func NewAccountService(repo accounts.Repository, hasher passwords.Hasher, tokens TokenIssuer, logger logging.Logger, clock func() time.Time) *AccountService {
	if clock == nil {
		clock = time.Now
	}
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("component", "accounts"),
		now:    func() time.Time { return clock().UTC() },
		newID:  uuid.NewString,
	}
}

// Signup validates input in a fixed order (empty, name, email, date of birth,
// password length) and creates the account with default settings.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	password := strings.TrimSpace(in.Password)
	dateOfBirth := strings.TrimSpace(in.DateOfBirth)

	if err := validation.First(
		validation.NotEmpty(name, email, password, dateOfBirth),
		validation.Name(name),
		validation.Email(email),
		validation.DateOfBirth(dateOfBirth),
		validation.Password(password),
	); err != nil {
		return nil, err
	}
	dob, _ := validation.ParseDate(dateOfBirth)

	// Fast path only; the store's unique index decides races.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrDuplicateEmail
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, s.internal(ctx, "signup lookup", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, s.internal(ctx, "signup hash", err)
	}

	account := models.NewAccount(s.newID(), name, email, hash, dob, s.now())
	created, err := s.repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, s.internal(ctx, "signup create", err)
	}

	token, err := s.tokens.Issue(created.ID, created.Email)
	if err != nil {
		return nil, s.internal(ctx, "signup token", err)
	}

	s.logger.Info(ctx, "account created", "user_id", created.ID)
	return &AuthResult{Token: token, Account: created.Public()}, nil
}

// Signin reports ErrInvalidCredentials for an unknown email and
// ErrInvalidPassword for a wrong password.
func (s *AccountService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return nil, common.ErrEmptyCredentials
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, s.internal(ctx, "signin lookup", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.logger.Debug(ctx, "signin rejected", "user_id", account.ID)
		return nil, common.ErrInvalidPassword
	}

	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return nil, s.internal(ctx, "signin token", err)
	}

	return &AuthResult{Token: token, Account: account.Public()}, nil
}

func (s *AccountService) GetProfile(ctx context.Context, id string) (*models.PublicAccount, error) {
	account, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return account.Public(), nil
}

// UpdateProfile requires a valid name and validates every other supplied
// field. Omitted fields keep their stored values.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) (*models.PublicAccount, error) {
	resolved, err := s.resolveProfile(patch)
	if err != nil {
		return nil, err
	}

	account, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if resolved.Email != nil && *resolved.Email != account.Email {
		owner, err := s.repo.GetByEmail(ctx, *resolved.Email)
		switch {
		case err == nil && owner.ID != account.ID:
			return nil, common.ErrDuplicateEmail
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			return nil, s.internal(ctx, "update lookup", err)
		}
	}

	account.Apply(resolved)
	updated, err := s.save(ctx, "update profile", account)
	if err != nil {
		return nil, err
	}
	return updated.Public(), nil
}

// resolveProfile validates patch and converts it for Account.Apply. It runs
// before any store access.
func (s *AccountService) resolveProfile(patch models.ProfilePatch) (models.ResolvedProfile, error) {
	var r models.ResolvedProfile

	if patch.Name == nil || strings.TrimSpace(*patch.Name) == "" {
		return r, validation.ErrEmptyFields
	}

	name := strings.TrimSpace(*patch.Name)
	rules := []validation.Rule{validation.Name(name)}
	r.Name = &name

	r.Email = trimmed(patch.Email)
	if r.Email != nil {
		rules = append(rules, validation.Email(*r.Email))
	}
	dob := trimmed(patch.DateOfBirth)
	if dob != nil {
		rules = append(rules, validation.DateOfBirth(*dob))
	}
	password := trimmed(patch.Password)
	if password != nil {
		rules = append(rules, validation.Password(*password))
	}
	r.Phone = trimmed(patch.Phone)
	if r.Phone != nil {
		rules = append(rules, validation.Phone(*r.Phone))
	}
	r.ZipCode = trimmed(patch.ZipCode)
	if r.ZipCode != nil {
		rules = append(rules, validation.ZipCode(*r.ZipCode))
	}
	r.Address = trimmed(patch.Address)
	r.City = trimmed(patch.City)
	r.RegNu = trimmed(patch.RegNu)

	if err := validation.First(rules...); err != nil {
		return r, err
	}

	if dob != nil {
		t, _ := validation.ParseDate(*dob)
		r.DateOfBirth = &t
	}
	if password != nil {
		hash, err := s.hasher.Hash(*password)
		if err != nil {
			return r, fmt.Errorf("hash password: %w", common.ErrorInternal)
		}
		r.PasswordHash = &hash
	}

	return r, nil
}

// DeleteAccount removes the account. Deleting an absent account succeeds.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.internal(ctx, "delete", err)
	}
	s.logger.Info(ctx, "account deleted", "user_id", id)
	return nil
}

// ChangePassword replaces the stored hash after checking current. The new
// password must satisfy the same length rule as at signup. No token is
// issued.
func (s *AccountService) ChangePassword(ctx context.Context, id, current, next string) error {
	next = strings.TrimSpace(next)

	if err := validation.First(
		validation.NotEmpty(current, next),
		validation.Password(next),
	); err != nil {
		return err
	}

	account, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(strings.TrimSpace(current), account.PasswordHash) {
		return common.ErrInvalidCurrentPassword
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return s.internal(ctx, "change password hash", err)
	}
	account.PasswordHash = hash

	if _, err := s.save(ctx, "change password", account); err != nil {
		return err
	}
	s.logger.Info(ctx, "password changed", "user_id", id)
	return nil
}

func (s *AccountService) GetNotificationSettings(ctx context.Context, id string) (models.NotificationSettings, error) {
	account, err := s.load(ctx, id)
	if err != nil {
		return models.NotificationSettings{}, err
	}
	return account.NotificationSettings, nil
}

func (s *AccountService) GetPreferenceSettings(ctx context.Context, id string) (models.PreferenceSettings, error) {
	account, err := s.load(ctx, id)
	if err != nil {
		return models.PreferenceSettings{}, err
	}
	return account.PreferenceSettings, nil
}

// UpdateNotificationSettings merges the supplied keys and returns the result.
func (s *AccountService) UpdateNotificationSettings(ctx context.Context, id string, patch models.NotificationSettingsPatch) (models.NotificationSettings, error) {
	account, err := s.load(ctx, id)
	if err != nil {
		return models.NotificationSettings{}, err
	}

	account.NotificationSettings = account.NotificationSettings.Apply(patch)
	updated, err := s.save(ctx, "update notification settings", account)
	if err != nil {
		return models.NotificationSettings{}, err
	}
	return updated.NotificationSettings, nil
}

// UpdatePreferenceSettings merges the supplied keys and returns the result.
func (s *AccountService) UpdatePreferenceSettings(ctx context.Context, id string, patch models.PreferenceSettingsPatch) (models.PreferenceSettings, error) {
	account, err := s.load(ctx, id)
	if err != nil {
		return models.PreferenceSettings{}, err
	}

	account.PreferenceSettings = account.PreferenceSettings.Apply(patch)
	updated, err := s.save(ctx, "update preference settings", account)
	if err != nil {
		return models.PreferenceSettings{}, err
	}
	return updated.PreferenceSettings, nil
}

// Ping reports whether the account store is reachable.
func (s *AccountService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// --- helpers below ---

func (s *AccountService) load(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, s.internal(ctx, "load", err)
	}
	return account, nil
}

func (s *AccountService) save(ctx context.Context, op string, account *models.Account) (*models.Account, error) {
	account.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, account)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorNotFound
		case errors.Is(err, common.ErrDuplicateEmail):
			return nil, common.ErrDuplicateEmail
		}
		return nil, s.internal(ctx, op, err)
	}
	return updated, nil
}

// internal logs a failure of the store, hasher or token signer and returns
// an error that carries no driver text.
func (s *AccountService) internal(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, "operation failed", "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, common.ErrorInternal)
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
