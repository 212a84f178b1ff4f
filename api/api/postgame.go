/* postgame.go
 * Contains the post-game phase: score entry, the goal list and MVP voting. All of these
 * require the explicit go-to-post-game transition to have happened first.
 */

package api

import (
	"context"
	"fmt"

	"patota-bot/api/client"
	"patota-bot/api/logic"
	"patota-bot/api/shared"
)

// SetScore writes both team scores directly. Admin-only; independent of recorded goals.
func (a *API) SetScore(ctx context.Context, teamA, teamB int) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	m, err := a.postGameMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	if teamA < 0 || teamB < 0 {
		return "", fmt.Errorf("scores cannot be negative")
	}
	if err := a.Backend.SetScore(ctx, m.MatchID, teamA, teamB); err != nil {
		return "", err
	}
	return fmt.Sprintf("Score set to %d - %d.", teamA, teamB), nil
}

// AddGoal records one goal. The scorer is required, the assist is optional (empty name
// means no assist) and the clock is free text as entered.
func (a *API) AddGoal(ctx context.Context, scorerName, assistName, clock string) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	m, err := a.postGameMatch(ctx, acc)
	if err != nil {
		return "", err
	}

	scorer, err := logic.ResolvePlayer(scorerName, m.Players)
	if err != nil {
		return "", err
	}
	goal := client.GoalRequest{ScorerPlayerID: scorer.PlayerID, Time: clock}
	if assistName != "" {
		assist, err := logic.ResolvePlayer(assistName, m.Players)
		if err != nil {
			return "", err
		}
		goal.AssistPlayerID = assist.PlayerID
	}
	if err := logic.ValidateGoal(goal.ScorerPlayerID, goal.Time); err != nil {
		return "", err
	}

	if err := a.Backend.AddGoal(ctx, m.MatchID, goal); err != nil {
		return "", err
	}
	m, err = a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Goal by %s at %s recorded.\n%s", scorer.PlayerName, clock, a.renderMatch(m)), nil
}

// RemoveGoal deletes one goal by its 1-based position in the rendered goal list
func (a *API) RemoveGoal(ctx context.Context, n int) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	m, err := a.postGameMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(m.Goals) {
		return "", fmt.Errorf("goal %d does not exist, the match has %d goals", n, len(m.Goals))
	}
	goal := m.Goals[n-1]
	if err := a.Backend.RemoveGoal(ctx, m.MatchID, goal.GoalID); err != nil {
		return "", err
	}
	m, err = a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Removed goal %d.\n%s", n, a.renderMatch(m)), nil
}

// Vote casts the caller's own MVP vote. The backend enforces one vote per participant and
// recomputes the MVP from the tally.
func (a *API) Vote(ctx context.Context, targetName string) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	m, err := a.postGameMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	if acc.ActivePlayerID == "" {
		return "", fmt.Errorf("your account has no player in this group")
	}
	return a.castVote(ctx, acc, m, acc.ActivePlayerID, targetName)
}

// VoteAs casts a vote on behalf of another participant. Admin-only; covers players who
// are present at the pitch but not on the bot.
func (a *API) VoteAs(ctx context.Context, voterName, targetName string) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	m, err := a.postGameMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	voter, err := logic.ResolvePlayer(voterName, m.Players)
	if err != nil {
		return "", err
	}
	return a.castVote(ctx, acc, m, voter.PlayerID, targetName)
}

func (a *API) castVote(ctx context.Context, acc shared.Account, m *shared.Match, voterPlayerID, targetName string) (string, error) {
	target, err := logic.ResolvePlayer(targetName, m.Players)
	if err != nil {
		return "", err
	}
	if !logic.CanAct(acc.IsAdmin(), acc.ActivePlayerID, voterPlayerID) {
		return "", fmt.Errorf("you can only cast your own vote")
	}
	if err := a.Backend.CastVote(ctx, m.MatchID, voterPlayerID, target.PlayerID); err != nil {
		return "", err
	}
	m, err = a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	res := fmt.Sprintf("Vote for %s recorded.", target.PlayerName)
	if m != nil && m.MVPPlayerID != "" {
		res += fmt.Sprintf(" Current MVP: %s.", resolveName(m.Players, m.MVPPlayerID))
	}
	return res, nil
}

// postGameMatch fetches the current match and requires it to be in the post-game step
func (a *API) postGameMatch(ctx context.Context, acc shared.Account) (*shared.Match, error) {
	m, err := a.currentMatch(ctx, acc)
	if err != nil {
		return nil, err
	}
	if err := a.requireStep(m, logic.StepPost); err != nil {
		return nil, err
	}
	return m, nil
}
