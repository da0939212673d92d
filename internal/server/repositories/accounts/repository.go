// Package accounts is the credential store: persistent account records keyed
// by identity, with email as a unique secondary key.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

// Repository persists whole account records.
//
// Lookups return common.ErrorNotFound when nothing matches. Create and Update
// return common.ErrDuplicateEmail when the store's uniqueness constraint on
// email rejects the write; the store is the authority on uniqueness. Delete is
// idempotent.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) (*models.Account, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
