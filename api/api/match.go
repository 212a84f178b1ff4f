/* match.go
 * Contains the match lifecycle operations: creation, invite responses and the forward
 * transitions through the wizard. Every transition is an explicit server call; the
 * client never advances a match on its own.
 */

package api

import (
	"context"
	"fmt"

	"patota-bot/api/logic"
	"patota-bot/api/shared"
)

// Status fetches the group's matches and renders the current one with its derived step
func (a *API) Status(ctx context.Context) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	m, err := a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	return a.renderMatch(m), nil
}

// CreateMatch schedules a new match. Admin-only; requires that no non-finalized match
// exists and that both the place name and the scheduled time are given.
func (a *API) CreateMatch(ctx context.Context, placeName, dateStr, timeStr string) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	existing, err := a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	if err := a.requireStep(existing, logic.StepCreate); err != nil {
		return "", err
	}

	placedAt, err := logic.CombineDateTime(dateStr, timeStr)
	if err != nil {
		return "", err
	}
	placedAtISO := placedAt.Format("2006-01-02T15:04:05Z07:00")
	if err := logic.ValidateCreateMatch(placeName, placedAtISO); err != nil {
		return "", err
	}

	gid, err := a.groupID(acc)
	if err != nil {
		return "", err
	}
	if _, err := a.Backend.CreateMatch(ctx, gid, placeName, placedAtISO); err != nil {
		return "", err
	}
	m, err := a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	return a.renderMatch(m), nil
}

// RespondInvite sets a player's invite response. With an empty target the caller acts on
// their own record; naming another player requires admin rights. The gating predicate is
// re-checked here because the backend endpoints are reachable by any authenticated user.
func (a *API) RespondInvite(ctx context.Context, targetName string, response shared.InviteResponse) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	m, err := a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	if err := a.requireStep(m, logic.StepAccept); err != nil {
		return "", err
	}

	target, err := a.findTarget(acc, m, targetName)
	if err != nil {
		return "", err
	}
	if !logic.CanAct(acc.IsAdmin(), acc.ActivePlayerID, target.PlayerID) {
		return "", fmt.Errorf("you can only answer your own invite")
	}
	if !logic.CanChangeInvite(target.InviteResponse, response) {
		return "", fmt.Errorf("cannot change invite from %s to %s", target.InviteResponse, response)
	}

	if err := a.beginBusy(target.MatchPlayerID); err != nil {
		return "", err
	}
	defer a.endBusy(target.MatchPlayerID)

	if err := a.Backend.SetInviteResponse(ctx, m.MatchID, target.MatchPlayerID, response); err != nil {
		return "", err
	}
	m, err = a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is now %s.\n%s", target.PlayerName, response, a.renderMatch(m)), nil
}

// AdvanceToTeams moves the match from the accept phase into matchmaking. Admin-only;
// needs at least 2 accepted players and an accepted count within the group's limit.
func (a *API) AdvanceToTeams(ctx context.Context) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	m, err := a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	if err := a.requireStep(m, logic.StepAccept); err != nil {
		return "", err
	}

	gid, err := a.groupID(acc)
	if err != nil {
		return "", err
	}
	settings, err := a.Backend.GroupSettings(ctx, gid)
	if err != nil {
		return "", err
	}
	accepted, _, _ := logic.PartitionRoster(m.Players)
	if err := logic.ValidateAdvanceToTeams(len(accepted), logic.MaxPlayers(settings)); err != nil {
		return "", err
	}

	if err := a.Backend.AdvanceToTeams(ctx, m.MatchID); err != nil {
		return "", err
	}
	return "Match moved to team selection. Use $generate to build team options.", nil
}

// StartMatch begins play. Admin-only; teams must have been assigned first.
func (a *API) StartMatch(ctx context.Context) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	m, err := a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	if err := a.requireStep(m, logic.StepTeams); err != nil {
		return "", err
	}
	if err := logic.ValidateStart(m.TeamsAssigned); err != nil {
		return "", err
	}
	if err := a.Backend.StartMatch(ctx, m.MatchID); err != nil {
		return "", err
	}
	return "Match started. Good luck!", nil
}

// EndMatch ends play. Admin-only.
func (a *API) EndMatch(ctx context.Context) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	m, err := a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	if err := a.requireStep(m, logic.StepPlaying); err != nil {
		return "", err
	}
	if err := a.Backend.EndMatch(ctx, m.MatchID); err != nil {
		return "", err
	}
	return "Match ended. Use $postgame to enter scores and votes.", nil
}

// GoToPostGame explicitly advances an ended match into the post-game phase. This is the
// one sub-step the server status does not encode on its own.
func (a *API) GoToPostGame(ctx context.Context) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	m, err := a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	if err := a.requireStep(m, logic.StepEnded); err != nil {
		return "", err
	}
	if err := a.Backend.GoToPostGame(ctx, m.MatchID); err != nil {
		return "", err
	}
	a.mu.Lock()
	a.postGameMatchID = m.MatchID
	a.mu.Unlock()
	return "Post-game open: enter the score with $score, goals with $goal, votes with $vote.", nil
}

// FinalizeMatch closes the match for good; it becomes read-only afterwards. Admin-only.
func (a *API) FinalizeMatch(ctx context.Context) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	m, err := a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	if err := a.requireStep(m, logic.StepPost); err != nil {
		return "", err
	}
	if err := a.Backend.FinalizeMatch(ctx, m.MatchID); err != nil {
		return "", err
	}
	a.mu.Lock()
	a.postGameMatchID = ""
	a.mu.Unlock()
	return "Match finalized.", nil
}

// RewindMatch asks the backend to roll the match back one stage. What it rewinds to is
// the server's decision; the client just re-derives its step from the next fetch.
func (a *API) RewindMatch(ctx context.Context) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	m, err := a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", fmt.Errorf("there is no match to rewind")
	}
	if err := a.Backend.RewindMatch(ctx, m.MatchID); err != nil {
		return "", err
	}
	a.mu.Lock()
	a.postGameMatchID = ""
	a.mu.Unlock()
	m, err = a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	return a.renderMatch(m), nil
}

// findTarget resolves which player record an action aims at: the caller's own record
// when no name is given, otherwise a fuzzy lookup over the match roster
func (a *API) findTarget(acc shared.Account, m *shared.Match, targetName string) (shared.MatchPlayer, error) {
	if targetName == "" {
		for _, p := range m.Players {
			if p.PlayerID == acc.ActivePlayerID && acc.ActivePlayerID != "" {
				return p, nil
			}
		}
		return shared.MatchPlayer{}, fmt.Errorf("you are not part of this match")
	}
	return logic.ResolvePlayer(targetName, m.Players)
}
