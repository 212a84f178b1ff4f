/* models.go
 * This file contains the structs, enums and helper functions that are shared between sub packages.
 * These mirror the JSON payloads of the patota backend; most fields are optional on the wire so
 * zero values must always be safe to work with.
 */

package shared

import "time"

// Role is a permission level attached to an account. Roles come back from the
// backend as an ordered list; GodMode implies Admin for every client-side check.
type Role int

const (
	RoleUser    Role = 1
	RoleAdmin   Role = 2
	RoleGodMode Role = 3
)

// Account is one authenticated identity. Several accounts can be stored at
// once (multi-login); the session store tracks which one is active.
type Account struct {
	UserID         string `json:"userId" bson:"userid"`
	Name           string `json:"name" bson:"name,omitempty"`
	Email          string `json:"email" bson:"email,omitempty"`
	Roles          []Role `json:"roles" bson:"roles,omitempty"`
	AccessToken    string `json:"accessToken" bson:"accesstoken,omitempty"`
	RefreshToken   string `json:"refreshToken" bson:"refreshtoken,omitempty"`
	ActiveGroupID  string `json:"activeGroupId,omitempty" bson:"activegroupid,omitempty"`
	ActivePlayerID string `json:"activePlayerId,omitempty" bson:"activeplayerid,omitempty"`
}

// IsAdmin reports whether the account holds the Admin or GodMode role
func (a Account) IsAdmin() bool {
	for _, r := range a.Roles {
		if r == RoleAdmin || r == RoleGodMode {
			return true
		}
	}
	return false
}

// AccountPatch holds optional field updates for an account. Nil fields are
// left untouched by a merge.
type AccountPatch struct {
	Name           *string
	Email          *string
	AccessToken    *string
	RefreshToken   *string
	ActiveGroupID  *string
	ActivePlayerID *string
}

// MatchStatus is the server-defined lifecycle stage of a match. The backend
// only ever moves a match forward through these values (rewind is an explicit
// server operation the client treats as opaque).
type MatchStatus int

const (
	StatusCreated        MatchStatus = 1
	StatusTeamsGenerated MatchStatus = 2
	StatusStarted        MatchStatus = 3
	StatusEnded          MatchStatus = 4
	StatusFinalized      MatchStatus = 5
)

// InviteResponse is a player's per-match acceptance state
type InviteResponse int

const (
	InvitePending  InviteResponse = 1
	InviteRejected InviteResponse = 2
	InviteAccepted InviteResponse = 3
)

func (r InviteResponse) String() string {
	switch r {
	case InvitePending:
		return "pending"
	case InviteRejected:
		return "rejected"
	case InviteAccepted:
		return "accepted"
	}
	return "unknown"
}

// TeamNumber identifies which side of the match a player is on
type TeamNumber int

const (
	TeamUnassigned TeamNumber = 0
	TeamA          TeamNumber = 1
	TeamB          TeamNumber = 2
)

// MatchPlayer is a player's participation record within one match. The
// MatchPlayerID is distinct from the player's group-wide PlayerID.
type MatchPlayer struct {
	MatchPlayerID  string         `json:"matchPlayerId"`
	PlayerID       string         `json:"playerId"`
	PlayerName     string         `json:"playerName"`
	IsGoalkeeper   bool           `json:"isGoalkeeper"`
	Team           TeamNumber     `json:"team"`
	InviteResponse InviteResponse `json:"inviteResponse"`
}

// Goal records one goal during a match. AssistPlayerID may be empty and Time
// is free text as entered by the admin (e.g. "21:04").
type Goal struct {
	GoalID         string     `json:"goalId"`
	ScorerPlayerID string     `json:"scorerPlayerId"`
	AssistPlayerID string     `json:"assistPlayerId,omitempty"`
	Team           TeamNumber `json:"team"`
	Time           string     `json:"time"`
}

// Vote is one MVP vote cast by a participant
type Vote struct {
	VoterPlayerID  string `json:"voterPlayerId"`
	TargetPlayerID string `json:"targetPlayerId"`
}

// Player is one registered member of a group, independent of any match
type Player struct {
	PlayerID     string `json:"playerId"`
	Name         string `json:"name"`
	IsGoalkeeper bool   `json:"isGoalkeeper"`
}

// TeamColor is one entry in a group's registered uniform palette
type TeamColor struct {
	TeamColorID string `json:"teamColorId"`
	Name        string `json:"name"`
	HexCode     string `json:"hexCode,omitempty"`
}

// Match is one scheduled game within a group. Scores are nullable because a
// match has no score until the post-game phase sets one.
type Match struct {
	MatchID       string        `json:"matchId"`
	GroupID       string        `json:"groupId"`
	PlacedAt      time.Time     `json:"placedAt"`
	PlaceName     string        `json:"placeName"`
	Status        MatchStatus   `json:"status"`
	TeamAColorID  string        `json:"teamAColorId,omitempty"`
	TeamBColorID  string        `json:"teamBColorId,omitempty"`
	ColorsLocked  bool          `json:"colorsLocked"`
	TeamsAssigned bool          `json:"teamsAssigned"`
	Players       []MatchPlayer `json:"players"`
	ScoreTeamA    *int          `json:"scoreTeamA"`
	ScoreTeamB    *int          `json:"scoreTeamB"`
	Goals         []Goal        `json:"goals"`
	Votes         []Vote        `json:"votes"`
	MVPPlayerID   string        `json:"mvpPlayerId,omitempty"`
}

// PlayerWeight is one weighted player entry inside a generated team option
type PlayerWeight struct {
	PlayerID     string  `json:"playerId"`
	PlayerName   string  `json:"playerName"`
	Weight       float64 `json:"weight"`
	IsGoalkeeper bool    `json:"isGoalkeeper"`
}

// TeamOption is one server-generated candidate team split. It is purely a
// display artifact until the admin commits it with an assign call.
type TeamOption struct {
	TeamA          []PlayerWeight `json:"teamA"`
	TeamB          []PlayerWeight `json:"teamB"`
	Unassigned     []PlayerWeight `json:"unassigned"`
	TeamAWeight    float64        `json:"teamAWeight"`
	TeamBWeight    float64        `json:"teamBWeight"`
	WeightDiff     float64        `json:"weightDiff"`
	GoalkeeperDiff int            `json:"goalkeeperDiff"`
	Score          float64        `json:"score"`
}

// GroupSettings carries the group's configuration. The capacity limit has
// gone by three different names across backend versions, so all three are
// kept and resolved by logic.MaxPlayers in priority order.
type GroupSettings struct {
	MaxPlayers         *int `json:"maxPlayers,omitempty"`
	MaxPlayersPerMatch *int `json:"maxPlayersPerMatch,omitempty"`
	MaxPlayersInMatch  *int `json:"maxPlayersInMatch,omitempty"`
}
