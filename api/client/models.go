/* models.go
 * Contains the wire DTOs for the patota backend plus the compatibility mapping for fields
 * that have shipped under more than one name. Normalization lives here so the alias lists
 * can change without touching any call site.
 */

package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"patota-bot/api/shared"
)

// APIError is a non-2xx response from the backend. Message carries the server-provided
// error text when there is one; callers fall back to Error() for display.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// errorBody covers the error shapes the backend has used: {"message": ...},
// {"error": ...} and problem-details {"title": ...}
type errorBody struct {
	Message  string `json:"message"`
	ErrorMsg string `json:"error"`
	Title    string `json:"title"`
}

// newAPIError builds an APIError from a response, tolerating bodies that are not JSON
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.ErrorMsg != "":
			apiErr.Message = body.ErrorMsg
		case body.Title != "":
			apiErr.Message = body.Title
		}
	}
	return apiErr
}

// tokenResponse is the payload of login and refresh-token. The access token has shipped
// as accessToken, token and jwt across backend versions; the refresh token as
// refreshToken and refresh_token. NormalizeTokens applies the documented priority order.
type tokenResponse struct {
	AccessToken       string       `json:"accessToken"`
	Token             string       `json:"token"`
	JWT               string       `json:"jwt"`
	RefreshToken      string       `json:"refreshToken"`
	RefreshTokenSnake string       `json:"refresh_token"`
	User              *userPayload `json:"user"`
}

// NormalizeTokens resolves the token aliases: accessToken > token > jwt, and
// refreshToken > refresh_token. Either result may be empty.
func (t tokenResponse) NormalizeTokens() (access, refresh string) {
	switch {
	case t.AccessToken != "":
		access = t.AccessToken
	case t.Token != "":
		access = t.Token
	default:
		access = t.JWT
	}
	if t.RefreshToken != "" {
		refresh = t.RefreshToken
	} else {
		refresh = t.RefreshTokenSnake
	}
	return access, refresh
}

// userPayload is the account half of a login response
type userPayload struct {
	UserID         string        `json:"userId"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Roles          []shared.Role `json:"roles"`
	ActiveGroupID  string        `json:"activeGroupId"`
	ActivePlayerID string        `json:"activePlayerId"`
}

// Account assembles a shared.Account from the login payload and normalized tokens
func (t tokenResponse) Account() (shared.Account, error) {
	access, refresh := t.NormalizeTokens()
	if access == "" {
		return shared.Account{}, fmt.Errorf("login response carried no access token")
	}
	acc := shared.Account{AccessToken: access, RefreshToken: refresh}
	if t.User != nil {
		acc.UserID = t.User.UserID
		acc.Name = t.User.Name
		acc.Email = t.User.Email
		acc.Roles = t.User.Roles
		acc.ActiveGroupID = t.User.ActiveGroupID
		acc.ActivePlayerID = t.User.ActivePlayerID
	}
	return acc, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
	AccessToken  string `json:"accessToken,omitempty"`
}

type createMatchRequest struct {
	GroupID   string `json:"groupId"`
	PlaceName string `json:"placeName"`
	PlacedAt  string `json:"placedAt"`
}

type inviteResponseRequest struct {
	InviteResponse shared.InviteResponse `json:"inviteResponse"`
}

// GenerationParams configures a team generation request
type GenerationParams struct {
	Strategy           int  `json:"strategy"`
	PlayersPerTeam     int  `json:"playersPerTeam"`
	IncludeGoalkeepers bool `json:"includeGoalkeepers"`
}

type assignTeamsRequest struct {
	Option shared.TeamOption `json:"option"`
}

type swapRequest struct {
	TeamAMatchPlayerID string `json:"teamAMatchPlayerId"`
	TeamBMatchPlayerID string `json:"teamBMatchPlayerId"`
}

type scoreRequest struct {
	ScoreTeamA int `json:"scoreTeamA"`
	ScoreTeamB int `json:"scoreTeamB"`
}

// GoalRequest is the payload for adding one goal
type GoalRequest struct {
	ScorerPlayerID string `json:"scorerPlayerId"`
	AssistPlayerID string `json:"assistPlayerId,omitempty"`
	Time           string `json:"time"`
}

type voteRequest struct {
	VoterPlayerID  string `json:"voterPlayerId"`
	TargetPlayerID string `json:"targetPlayerId"`
}

type setColorsRequest struct {
	TeamAColorID string `json:"teamAColorId"`
	TeamBColorID string `json:"teamBColorId"`
}
