/* accounts.go
 * Contains the account operations of the session store. Every mutation persists the full
 * session document before returning, so durable state never lags the in-memory state by
 * more than the call in progress.
 */

package store

import (
	"fmt"

	"patota-bot/api/shared"

	"github.com/google/uuid"
)

// UpsertAccount inserts or merges an account by its user id and always makes it the
// active account. Non-empty incoming fields win over stored ones; empty incoming fields
// keep whatever was already stored, so a re-login does not wipe a previously chosen
// group or player.
func (s *Store) UpsertAccount(acc shared.Account) error {
	if acc.UserID == "" {
		return fmt.Errorf("account is missing a user id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.accounts {
		if s.accounts[i].UserID != acc.UserID {
			continue
		}
		s.accounts[i] = mergeAccount(s.accounts[i], acc)
		found = true
		break
	}
	if !found {
		s.accounts = append(s.accounts, acc)
	}
	s.activeUserID = acc.UserID
	return s.persistSession()
}

// RemoveAccount deletes one account. If it was active, an arbitrary remaining account is
// promoted to active (or none, when the list is empty).
func (s *Store) RemoveAccount(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.accounts[:0]
	for _, a := range s.accounts {
		if a.UserID != userID {
			kept = append(kept, a)
		}
	}
	s.accounts = kept

	if s.activeUserID == userID {
		s.activeUserID = ""
		if len(s.accounts) > 0 {
			s.activeUserID = s.accounts[0].UserID
		}
	}
	return s.persistSession()
}

// SetActiveAccount switches the active pointer to a stored account
func (s *Store) SetActiveAccount(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.UserID == userID {
			s.activeUserID = userID
			return s.persistSession()
		}
	}
	return fmt.Errorf("no stored account with id %s", userID)
}

// UpdateActive shallow-merges the patch into the currently active account. A store with
// no active account treats this as a no-op.
func (s *Store) UpdateActive(patch shared.AccountPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if s.accounts[i].UserID != s.activeUserID {
			continue
		}
		applyPatch(&s.accounts[i], patch)
		return s.persistSession()
	}
	return nil
}

// GetActive returns a snapshot of the active account; the second return value is false
// when nobody is logged in
func (s *Store) GetActive() (shared.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.UserID == s.activeUserID && s.activeUserID != "" {
			return a, true
		}
	}
	return shared.Account{}, false
}

// Accounts returns a snapshot of every stored account
func (s *Store) Accounts() []shared.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]shared.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// LogoutActive removes the active account entirely
func (s *Store) LogoutActive() error {
	s.mu.Lock()
	active := s.activeUserID
	s.mu.Unlock()

	if active == "" {
		return fmt.Errorf("no active account to log out")
	}
	return s.RemoveAccount(active)
}

// SetDefaultGroupID stores the manually-entered group id. The value must be GUID-shaped
// before it is trusted as a default.
func (s *Store) SetDefaultGroupID(groupID string) error {
	if _, err := uuid.Parse(groupID); err != nil {
		return fmt.Errorf("group id must be a GUID: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultGroupID = groupID
	return s.persistGroup()
}

// DefaultGroupID returns the stored default group id, or "" when none was set
func (s *Store) DefaultGroupID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultGroupID
}

// mergeAccount overlays non-empty fields of the incoming account onto the stored one
func mergeAccount(stored, incoming shared.Account) shared.Account {
	out := stored
	if incoming.Name != "" {
		out.Name = incoming.Name
	}
	if incoming.Email != "" {
		out.Email = incoming.Email
	}
	if len(incoming.Roles) > 0 {
		out.Roles = incoming.Roles
	}
	if incoming.AccessToken != "" {
		out.AccessToken = incoming.AccessToken
	}
	if incoming.RefreshToken != "" {
		out.RefreshToken = incoming.RefreshToken
	}
	if incoming.ActiveGroupID != "" {
		out.ActiveGroupID = incoming.ActiveGroupID
	}
	if incoming.ActivePlayerID != "" {
		out.ActivePlayerID = incoming.ActivePlayerID
	}
	return out
}

// applyPatch applies the non-nil fields of a patch in place
func applyPatch(acc *shared.Account, patch shared.AccountPatch) {
	if patch.Name != nil {
		acc.Name = *patch.Name
	}
	if patch.Email != nil {
		acc.Email = *patch.Email
	}
	if patch.AccessToken != nil {
		acc.AccessToken = *patch.AccessToken
	}
	if patch.RefreshToken != nil {
		acc.RefreshToken = *patch.RefreshToken
	}
	if patch.ActiveGroupID != nil {
		acc.ActiveGroupID = *patch.ActiveGroupID
	}
	if patch.ActivePlayerID != nil {
		acc.ActivePlayerID = *patch.ActivePlayerID
	}
}
