/* api.go
 * This file contains the public entry points for the patota client: session commands plus
 * the shared helpers every wizard action goes through. For consistent permission checks,
 * mutating operations should only be called through this package, not the sub packages.
 * Match lifecycle operations live in match.go, team selection in teams.go and the
 * post-game phase in postgame.go.
 */

package api

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"patota-bot/api/client"
	"patota-bot/api/logic"
	"patota-bot/api/shared"
	"patota-bot/api/store"
)

// API drives the match wizard over the backend. The wizard step is always derived from
// the latest fetched match; the only state held here is presentation state (the generated
// option carousel, the ended->post marker and the per-player busy map).
type API struct {
	Backend client.Interface
	Store   store.Interface

	mu              sync.Mutex
	options         []shared.TeamOption
	optionsMatchID  string
	selectedOption  int
	postGameMatchID string
	busy            map[string]bool
}

// NewAPI creates a new API instance over a backend client and a session store
func NewAPI(backend client.Interface, sessions store.Interface) (*API, error) {
	if backend == nil || sessions == nil {
		return nil, fmt.Errorf("backend and session store are required")
	}
	return &API{
		Backend: backend,
		Store:   sessions,
		busy:    make(map[string]bool),
	}, nil
}

// Login authenticates against the backend and stores the account as the active session
func (a *API) Login(ctx context.Context, email, password string) (string, error) {
	acc, err := a.Backend.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	if err := a.Store.UpsertAccount(acc); err != nil {
		return "", err
	}
	role := "player"
	if acc.IsAdmin() {
		role = "admin"
	}
	name := acc.Name
	if name == "" {
		name = acc.Email
	}
	return fmt.Sprintf("Logged in as %s (%s)", name, role), nil
}

// Logout removes the active account entirely
func (a *API) Logout() (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := a.Store.LogoutActive(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Logged out %s", acc.Email), nil
}

// Accounts lists every stored account with the active one marked
func (a *API) Accounts() (string, error) {
	accounts := a.Store.Accounts()
	if len(accounts) == 0 {
		return "No accounts stored. Use $login to sign in.", nil
	}
	active, _ := a.Store.GetActive()

	var res strings.Builder
	res.WriteString("Stored accounts:\n")
	for i, acc := range accounts {
		marker := " "
		if acc.UserID == active.UserID {
			marker = "*"
		}
		res.WriteString(fmt.Sprintf("%s %d. %s <%s>\n", marker, i+1, acc.Name, acc.Email))
	}
	return res.String(), nil
}

// SwitchAccount makes another stored account the active one, matched by email
func (a *API) SwitchAccount(email string) (string, error) {
	for _, acc := range a.Store.Accounts() {
		if strings.EqualFold(acc.Email, strings.TrimSpace(email)) {
			if err := a.Store.SetActiveAccount(acc.UserID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Switched to %s", acc.Email), nil
		}
	}
	return "", fmt.Errorf("no stored account with email %s", email)
}

// SetGroup stores the default group id and points the active account at it. The
// account's player id in the new group is resolved by name when the backend knows one;
// failing to resolve is not an error, invite commands just require admin help then.
func (a *API) SetGroup(ctx context.Context, groupID string) (string, error) {
	if err := a.Store.SetDefaultGroupID(groupID); err != nil {
		return "", err
	}
	gid := groupID
	patch := shared.AccountPatch{ActiveGroupID: &gid}

	res := fmt.Sprintf("Active group set to %s", groupID)
	if acc, ok := a.Store.GetActive(); ok && acc.Name != "" {
		if players, err := a.Backend.Players(ctx, groupID); err == nil {
			for _, p := range players {
				if strings.EqualFold(p.Name, acc.Name) {
					pid := p.PlayerID
					patch.ActivePlayerID = &pid
					res += fmt.Sprintf(", you play as %s", p.Name)
					break
				}
			}
		}
	}

	if err := a.Store.UpdateActive(patch); err != nil {
		return "", err
	}
	return res, nil
}

// activeAccount returns the active account or an instruction to log in
func (a *API) activeAccount() (shared.Account, error) {
	acc, ok := a.Store.GetActive()
	if !ok {
		return shared.Account{}, fmt.Errorf("nobody is logged in, use $login first")
	}
	return acc, nil
}

// groupID resolves which group the account operates on: the account's own selection
// first, then the manually stored default
func (a *API) groupID(acc shared.Account) (string, error) {
	if acc.ActiveGroupID != "" {
		return acc.ActiveGroupID, nil
	}
	if gid := a.Store.DefaultGroupID(); gid != "" {
		return gid, nil
	}
	return "", fmt.Errorf("no group selected, use $group <id> first")
}

// currentMatch fetches the group's matches and selects the current one (which may be
// nil). Carousel and post-game markers belonging to a different match are dropped here,
// so stale presentation state can not outlive the match it described.
func (a *API) currentMatch(ctx context.Context, acc shared.Account) (*shared.Match, error) {
	gid, err := a.groupID(acc)
	if err != nil {
		return nil, err
	}
	matches, err := a.Backend.Matches(ctx, gid)
	if err != nil {
		return nil, err
	}
	m := logic.SelectCurrentMatch(matches)

	a.mu.Lock()
	if m == nil || (a.optionsMatchID != "" && a.optionsMatchID != m.MatchID) {
		a.options = nil
		a.optionsMatchID = ""
		a.selectedOption = 0
	}
	if m == nil || (a.postGameMatchID != "" && a.postGameMatchID != m.MatchID) {
		a.postGameMatchID = ""
	}
	a.mu.Unlock()
	return m, nil
}

// step derives the wizard step for a match, folding in the ended->post marker
func (a *API) step(m *shared.Match) logic.Step {
	a.mu.Lock()
	inPostGame := m != nil && m.MatchID == a.postGameMatchID
	a.mu.Unlock()
	return logic.DeriveStep(m, inPostGame)
}

// requireStep guards an action to the step it belongs to
func (a *API) requireStep(m *shared.Match, want logic.Step) error {
	if got := a.step(m); got != want {
		return fmt.Errorf("this action belongs to the %s step, the match is at %s", want, got)
	}
	return nil
}

// requireAdmin guards the admin-only transitions and mutations
func requireAdmin(acc shared.Account) error {
	if !acc.IsAdmin() {
		return fmt.Errorf("only a group admin can do this")
	}
	return nil
}

// beginBusy marks one player's invite mutation as in flight so a second press does not
// fire a duplicate request; unrelated players stay actionable
func (a *API) beginBusy(key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.busy[key] {
		return fmt.Errorf("an action for this player is already in progress")
	}
	a.busy[key] = true
	return nil
}

func (a *API) endBusy(key string) {
	a.mu.Lock()
	delete(a.busy, key)
	a.mu.Unlock()
}

// renderMatch builds the status summary shown by $status and after mutations
func (a *API) renderMatch(m *shared.Match) string {
	if m == nil {
		return "No current match. An admin can schedule one with $creatematch."
	}
	step := a.step(m)
	accepted, rejected, pending := logic.PartitionRoster(m.Players)

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Match at %s, %s (step: %s)\n", m.PlaceName, m.PlacedAt.Format("Mon 02 Jan 15:04"), step))
	res.WriteString(fmt.Sprintf("Accepted (%d): %s\n", len(accepted), playerNames(accepted)))
	if len(pending) > 0 {
		res.WriteString(fmt.Sprintf("Pending (%d): %s\n", len(pending), playerNames(pending)))
	}
	if len(rejected) > 0 {
		res.WriteString(fmt.Sprintf("Rejected (%d): %s\n", len(rejected), playerNames(rejected)))
	}
	if m.TeamsAssigned {
		res.WriteString(fmt.Sprintf("Team A: %s\n", teamNames(m.Players, shared.TeamA)))
		res.WriteString(fmt.Sprintf("Team B: %s\n", teamNames(m.Players, shared.TeamB)))
	}
	if m.ScoreTeamA != nil && m.ScoreTeamB != nil {
		res.WriteString(fmt.Sprintf("Score: %d - %d\n", *m.ScoreTeamA, *m.ScoreTeamB))
	}
	for i, g := range m.Goals {
		res.WriteString(fmt.Sprintf("Goal %d: %s at %s\n", i+1, resolveName(m.Players, g.ScorerPlayerID), g.Time))
	}
	if m.MVPPlayerID != "" {
		res.WriteString(fmt.Sprintf("MVP: %s\n", resolveName(m.Players, m.MVPPlayerID)))
	}
	return res.String()
}

func playerNames(players []shared.MatchPlayer) string {
	if len(players) == 0 {
		return "-"
	}
	names := make([]string, 0, len(players))
	for _, p := range players {
		name := p.PlayerName
		if p.IsGoalkeeper {
			name += " (gk)"
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

func teamNames(players []shared.MatchPlayer, team shared.TeamNumber) string {
	var side []shared.MatchPlayer
	for _, p := range players {
		if p.Team == team {
			side = append(side, p)
		}
	}
	return playerNames(side)
}

func resolveName(players []shared.MatchPlayer, playerID string) string {
	for _, p := range players {
		if p.PlayerID == playerID {
			return p.PlayerName
		}
	}
	return playerID
}
