/* test_mocks.go
 * Contains a mock backend for testing the facade without HTTP. The mock keeps one
 * in-memory match and applies mutations the way the real backend would, so flows can be
 * exercised end to end. Error fields inject failures per endpoint.
 */

package api

import (
	"context"
	"fmt"

	"patota-bot/api/client"
	"patota-bot/api/shared"
)

// MockBackend implements client.Interface over in-memory state
type MockBackend struct {
	LoginAccount shared.Account
	Match        *shared.Match
	Settings     shared.GroupSettings
	Palette      []shared.TeamColor
	GroupPlayers []shared.Player
	Options      []shared.TeamOption

	LoginError    error
	MatchesError  error
	MutationError error
	GenerateError error

	Calls []string
}

// Ensure MockBackend implements client.Interface
var _ client.Interface = (*MockBackend)(nil)

func (b *MockBackend) record(name string) {
	b.Calls = append(b.Calls, name)
}

func (b *MockBackend) Login(ctx context.Context, email, password string) (shared.Account, error) {
	b.record("Login")
	if b.LoginError != nil {
		return shared.Account{}, b.LoginError
	}
	return b.LoginAccount, nil
}

func (b *MockBackend) Matches(ctx context.Context, groupID string) ([]shared.Match, error) {
	b.record("Matches")
	if b.MatchesError != nil {
		return nil, b.MatchesError
	}
	if b.Match == nil {
		return nil, nil
	}
	return []shared.Match{*b.Match}, nil
}

func (b *MockBackend) CreateMatch(ctx context.Context, groupID, placeName, placedAtISO string) (shared.Match, error) {
	b.record("CreateMatch")
	if b.MutationError != nil {
		return shared.Match{}, b.MutationError
	}
	m := shared.Match{MatchID: "m1", GroupID: groupID, PlaceName: placeName, Status: shared.StatusCreated}
	b.Match = &m
	return m, nil
}

func (b *MockBackend) SetInviteResponse(ctx context.Context, matchID, matchPlayerID string, r shared.InviteResponse) error {
	b.record("SetInviteResponse")
	if b.MutationError != nil {
		return b.MutationError
	}
	for i := range b.Match.Players {
		if b.Match.Players[i].MatchPlayerID == matchPlayerID {
			b.Match.Players[i].InviteResponse = r
			return nil
		}
	}
	return fmt.Errorf("no such match player %s", matchPlayerID)
}

func (b *MockBackend) AdvanceToTeams(ctx context.Context, matchID string) error {
	b.record("AdvanceToTeams")
	if b.MutationError != nil {
		return b.MutationError
	}
	b.Match.Status = shared.StatusTeamsGenerated
	return nil
}

func (b *MockBackend) GenerateTeamOptions(ctx context.Context, matchID string, params client.GenerationParams) ([]shared.TeamOption, error) {
	b.record("GenerateTeamOptions")
	if b.GenerateError != nil {
		return nil, b.GenerateError
	}
	return b.Options, nil
}

func (b *MockBackend) AssignTeams(ctx context.Context, matchID string, opt shared.TeamOption) error {
	b.record("AssignTeams")
	if b.MutationError != nil {
		return b.MutationError
	}
	b.Match.TeamsAssigned = true
	for i := range b.Match.Players {
		for _, w := range opt.TeamA {
			if w.PlayerID == b.Match.Players[i].PlayerID {
				b.Match.Players[i].Team = shared.TeamA
			}
		}
		for _, w := range opt.TeamB {
			if w.PlayerID == b.Match.Players[i].PlayerID {
				b.Match.Players[i].Team = shared.TeamB
			}
		}
	}
	return nil
}

func (b *MockBackend) SwapPlayers(ctx context.Context, matchID, teamAMatchPlayerID, teamBMatchPlayerID string) error {
	b.record("SwapPlayers")
	if b.MutationError != nil {
		return b.MutationError
	}
	for i := range b.Match.Players {
		switch b.Match.Players[i].MatchPlayerID {
		case teamAMatchPlayerID:
			b.Match.Players[i].Team = shared.TeamB
		case teamBMatchPlayerID:
			b.Match.Players[i].Team = shared.TeamA
		}
	}
	return nil
}

func (b *MockBackend) StartMatch(ctx context.Context, matchID string) error {
	b.record("StartMatch")
	if b.MutationError != nil {
		return b.MutationError
	}
	b.Match.Status = shared.StatusStarted
	return nil
}

func (b *MockBackend) EndMatch(ctx context.Context, matchID string) error {
	b.record("EndMatch")
	if b.MutationError != nil {
		return b.MutationError
	}
	b.Match.Status = shared.StatusEnded
	return nil
}

func (b *MockBackend) GoToPostGame(ctx context.Context, matchID string) error {
	b.record("GoToPostGame")
	return b.MutationError
}

func (b *MockBackend) FinalizeMatch(ctx context.Context, matchID string) error {
	b.record("FinalizeMatch")
	if b.MutationError != nil {
		return b.MutationError
	}
	b.Match.Status = shared.StatusFinalized
	return nil
}

func (b *MockBackend) RewindMatch(ctx context.Context, matchID string) error {
	b.record("RewindMatch")
	if b.MutationError != nil {
		return b.MutationError
	}
	if b.Match.Status > shared.StatusCreated {
		b.Match.Status--
	}
	return nil
}

func (b *MockBackend) SetScore(ctx context.Context, matchID string, teamA, teamB int) error {
	b.record("SetScore")
	if b.MutationError != nil {
		return b.MutationError
	}
	b.Match.ScoreTeamA = &teamA
	b.Match.ScoreTeamB = &teamB
	return nil
}

func (b *MockBackend) AddGoal(ctx context.Context, matchID string, goal client.GoalRequest) error {
	b.record("AddGoal")
	if b.MutationError != nil {
		return b.MutationError
	}
	b.Match.Goals = append(b.Match.Goals, shared.Goal{
		GoalID:         fmt.Sprintf("g%d", len(b.Match.Goals)+1),
		ScorerPlayerID: goal.ScorerPlayerID,
		AssistPlayerID: goal.AssistPlayerID,
		Time:           goal.Time,
	})
	return nil
}

func (b *MockBackend) RemoveGoal(ctx context.Context, matchID, goalID string) error {
	b.record("RemoveGoal")
	if b.MutationError != nil {
		return b.MutationError
	}
	for i, g := range b.Match.Goals {
		if g.GoalID == goalID {
			b.Match.Goals = append(b.Match.Goals[:i], b.Match.Goals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no such goal %s", goalID)
}

func (b *MockBackend) CastVote(ctx context.Context, matchID, voterPlayerID, targetPlayerID string) error {
	b.record("CastVote")
	if b.MutationError != nil {
		return b.MutationError
	}
	b.Match.Votes = append(b.Match.Votes, shared.Vote{VoterPlayerID: voterPlayerID, TargetPlayerID: targetPlayerID})
	b.Match.MVPPlayerID = targetPlayerID
	return nil
}

func (b *MockBackend) GroupSettings(ctx context.Context, groupID string) (shared.GroupSettings, error) {
	b.record("GroupSettings")
	if b.MatchesError != nil {
		return shared.GroupSettings{}, b.MatchesError
	}
	return b.Settings, nil
}

func (b *MockBackend) Players(ctx context.Context, groupID string) ([]shared.Player, error) {
	b.record("Players")
	if b.MatchesError != nil {
		return nil, b.MatchesError
	}
	return b.GroupPlayers, nil
}

func (b *MockBackend) TeamColors(ctx context.Context, groupID string) ([]shared.TeamColor, error) {
	b.record("TeamColors")
	if b.MatchesError != nil {
		return nil, b.MatchesError
	}
	return b.Palette, nil
}

func (b *MockBackend) SetMatchColors(ctx context.Context, matchID, teamAColorID, teamBColorID string) error {
	b.record("SetMatchColors")
	if b.MutationError != nil {
		return b.MutationError
	}
	b.Match.TeamAColorID = teamAColorID
	b.Match.TeamBColorID = teamBColorID
	b.Match.ColorsLocked = true
	return nil
}

func (b *MockBackend) UnlockMatchColors(ctx context.Context, matchID string) error {
	b.record("UnlockMatchColors")
	if b.MutationError != nil {
		return b.MutationError
	}
	b.Match.ColorsLocked = false
	return nil
}
