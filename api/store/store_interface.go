/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"

	"patota-bot/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	UpsertAccount(acc shared.Account) error
	RemoveAccount(userID string) error
	SetActiveAccount(userID string) error
	UpdateActive(patch shared.AccountPatch) error
	GetActive() (shared.Account, bool)
	Accounts() []shared.Account
	LogoutActive() error
	SetDefaultGroupID(groupID string) error
	DefaultGroupID() string

	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
