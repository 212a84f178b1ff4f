/* endpoints.go
 * Contains the typed endpoint methods for each backend resource family, plus the
 * Interface used to mock the whole backend in higher-level tests.
 */

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"patota-bot/api/shared"
)

// Interface defines the backend surface the rest of the program consumes.
// This allows for mocking in tests.
type Interface interface {
	Login(ctx context.Context, email, password string) (shared.Account, error)
	Matches(ctx context.Context, groupID string) ([]shared.Match, error)
	CreateMatch(ctx context.Context, groupID, placeName, placedAtISO string) (shared.Match, error)
	SetInviteResponse(ctx context.Context, matchID, matchPlayerID string, r shared.InviteResponse) error
	AdvanceToTeams(ctx context.Context, matchID string) error
	GenerateTeamOptions(ctx context.Context, matchID string, params GenerationParams) ([]shared.TeamOption, error)
	AssignTeams(ctx context.Context, matchID string, opt shared.TeamOption) error
	SwapPlayers(ctx context.Context, matchID, teamAMatchPlayerID, teamBMatchPlayerID string) error
	StartMatch(ctx context.Context, matchID string) error
	EndMatch(ctx context.Context, matchID string) error
	GoToPostGame(ctx context.Context, matchID string) error
	FinalizeMatch(ctx context.Context, matchID string) error
	RewindMatch(ctx context.Context, matchID string) error
	SetScore(ctx context.Context, matchID string, teamA, teamB int) error
	AddGoal(ctx context.Context, matchID string, goal GoalRequest) error
	RemoveGoal(ctx context.Context, matchID, goalID string) error
	CastVote(ctx context.Context, matchID, voterPlayerID, targetPlayerID string) error
	GroupSettings(ctx context.Context, groupID string) (shared.GroupSettings, error)
	Players(ctx context.Context, groupID string) ([]shared.Player, error)
	TeamColors(ctx context.Context, groupID string) ([]shared.TeamColor, error)
	SetMatchColors(ctx context.Context, matchID, teamAColorID, teamBColorID string) error
	UnlockMatchColors(ctx context.Context, matchID string) error
}

// Ensure Client implements Interface
var _ Interface = (*Client)(nil)

// Login authenticates against the backend and returns the account with its token pair.
// It does not touch the session store; callers decide whether to upsert the account.
func (c *Client) Login(ctx context.Context, email, password string) (shared.Account, error) {
	if email == "" || password == "" {
		return shared.Account{}, fmt.Errorf("email and password are required")
	}
	var tokens tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/Authentication/login", loginRequest{Email: email, Password: password}, &tokens)
	if err != nil {
		return shared.Account{}, err
	}
	return tokens.Account()
}

// Matches fetches every match of a group
func (c *Client) Matches(ctx context.Context, groupID string) ([]shared.Match, error) {
	var matches []shared.Match
	err := c.do(ctx, http.MethodGet, "/api/Matches/group/"+url.PathEscape(groupID), nil, &matches)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// CreateMatch creates a new match in the group
func (c *Client) CreateMatch(ctx context.Context, groupID, placeName, placedAtISO string) (shared.Match, error) {
	var match shared.Match
	body := createMatchRequest{GroupID: groupID, PlaceName: placeName, PlacedAt: placedAtISO}
	err := c.do(ctx, http.MethodPost, "/api/Matches", body, &match)
	return match, err
}

// SetInviteResponse updates one player's invite response within a match
func (c *Client) SetInviteResponse(ctx context.Context, matchID, matchPlayerID string, r shared.InviteResponse) error {
	path := fmt.Sprintf("/api/Matches/%s/players/%s/invite-response", url.PathEscape(matchID), url.PathEscape(matchPlayerID))
	return c.do(ctx, http.MethodPut, path, inviteResponseRequest{InviteResponse: r}, nil)
}

// AdvanceToTeams moves a match from the accept phase into matchmaking
func (c *Client) AdvanceToTeams(ctx context.Context, matchID string) error {
	return c.do(ctx, http.MethodPost, "/api/Matches/"+url.PathEscape(matchID)+"/go-to-teams", nil, nil)
}

// GenerateTeamOptions asks the backend for a ranked list of candidate team splits
func (c *Client) GenerateTeamOptions(ctx context.Context, matchID string, params GenerationParams) ([]shared.TeamOption, error) {
	var options []shared.TeamOption
	err := c.do(ctx, http.MethodPost, "/api/TeamGeneration/"+url.PathEscape(matchID), params, &options)
	if err != nil {
		return nil, err
	}
	return options, nil
}

// AssignTeams commits one generated option as the match's team assignment
func (c *Client) AssignTeams(ctx context.Context, matchID string, opt shared.TeamOption) error {
	return c.do(ctx, http.MethodPost, "/api/Matches/"+url.PathEscape(matchID)+"/assign-teams", assignTeamsRequest{Option: opt}, nil)
}

// SwapPlayers exchanges one assigned player from each side
func (c *Client) SwapPlayers(ctx context.Context, matchID, teamAMatchPlayerID, teamBMatchPlayerID string) error {
	body := swapRequest{TeamAMatchPlayerID: teamAMatchPlayerID, TeamBMatchPlayerID: teamBMatchPlayerID}
	return c.do(ctx, http.MethodPost, "/api/Matches/"+url.PathEscape(matchID)+"/swap", body, nil)
}

// StartMatch moves an assigned match into play
func (c *Client) StartMatch(ctx context.Context, matchID string) error {
	return c.do(ctx, http.MethodPost, "/api/Matches/"+url.PathEscape(matchID)+"/start", nil, nil)
}

// EndMatch ends play
func (c *Client) EndMatch(ctx context.Context, matchID string) error {
	return c.do(ctx, http.MethodPost, "/api/Matches/"+url.PathEscape(matchID)+"/end", nil, nil)
}

// GoToPostGame explicitly advances an ended match into the post-game phase
func (c *Client) GoToPostGame(ctx context.Context, matchID string) error {
	return c.do(ctx, http.MethodPost, "/api/Matches/"+url.PathEscape(matchID)+"/go-to-post-game", nil, nil)
}

// FinalizeMatch closes a match for good; it becomes read-only afterwards
func (c *Client) FinalizeMatch(ctx context.Context, matchID string) error {
	return c.do(ctx, http.MethodPost, "/api/Matches/"+url.PathEscape(matchID)+"/finalize", nil, nil)
}

// RewindMatch asks the backend to roll the match status back one stage. The client
// treats this operation as opaque; what it rewinds to is the server's business.
func (c *Client) RewindMatch(ctx context.Context, matchID string) error {
	return c.do(ctx, http.MethodPost, "/api/Matches/"+url.PathEscape(matchID)+"/rewind", nil, nil)
}

// SetScore writes the two team scores directly, independent of recorded goals
func (c *Client) SetScore(ctx context.Context, matchID string, teamA, teamB int) error {
	return c.do(ctx, http.MethodPut, "/api/Matches/"+url.PathEscape(matchID)+"/score", scoreRequest{ScoreTeamA: teamA, ScoreTeamB: teamB}, nil)
}

// AddGoal records one goal; the backend recomputes team scores from the goal list
func (c *Client) AddGoal(ctx context.Context, matchID string, goal GoalRequest) error {
	return c.do(ctx, http.MethodPost, "/api/Matches/"+url.PathEscape(matchID)+"/goals", goal, nil)
}

// RemoveGoal deletes one goal by id
func (c *Client) RemoveGoal(ctx context.Context, matchID, goalID string) error {
	path := fmt.Sprintf("/api/Matches/%s/goals/%s", url.PathEscape(matchID), url.PathEscape(goalID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// CastVote submits one MVP vote. The backend enforces the one-vote-per-participant rule.
func (c *Client) CastVote(ctx context.Context, matchID, voterPlayerID, targetPlayerID string) error {
	body := voteRequest{VoterPlayerID: voterPlayerID, TargetPlayerID: targetPlayerID}
	return c.do(ctx, http.MethodPost, "/api/Matches/"+url.PathEscape(matchID)+"/votes", body, nil)
}

// GroupSettings fetches the group configuration
func (c *Client) GroupSettings(ctx context.Context, groupID string) (shared.GroupSettings, error) {
	var settings shared.GroupSettings
	err := c.do(ctx, http.MethodGet, "/api/GroupSettings/"+url.PathEscape(groupID), nil, &settings)
	return settings, err
}

// Players fetches the group's registered players
func (c *Client) Players(ctx context.Context, groupID string) ([]shared.Player, error) {
	var players []shared.Player
	err := c.do(ctx, http.MethodGet, "/api/Players/group/"+url.PathEscape(groupID), nil, &players)
	if err != nil {
		return nil, err
	}
	return players, nil
}

// TeamColors fetches the group's registered color palette
func (c *Client) TeamColors(ctx context.Context, groupID string) ([]shared.TeamColor, error) {
	var palette []shared.TeamColor
	err := c.do(ctx, http.MethodGet, "/api/TeamColor/group/"+url.PathEscape(groupID), nil, &palette)
	if err != nil {
		return nil, err
	}
	return palette, nil
}

// SetMatchColors applies two palette colors to the match teams; the backend locks them
func (c *Client) SetMatchColors(ctx context.Context, matchID, teamAColorID, teamBColorID string) error {
	body := setColorsRequest{TeamAColorID: teamAColorID, TeamBColorID: teamBColorID}
	return c.do(ctx, http.MethodPut, "/api/Matches/"+url.PathEscape(matchID)+"/colors", body, nil)
}

// UnlockMatchColors re-opens color selection for a match whose colors are locked
func (c *Client) UnlockMatchColors(ctx context.Context, matchID string) error {
	return c.do(ctx, http.MethodPut, "/api/Matches/"+url.PathEscape(matchID)+"/colors/unlock", nil, nil)
}
