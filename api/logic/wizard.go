/* wizard.go
 * Contains the match lifecycle state machine: the fixed step sequence, the status to step
 * derivation and the guard functions for every admin transition. The step is always derived
 * from the latest fetched match, never stored, so it can not desync from the server.
 */

package logic

import (
	"fmt"
	"strings"

	"patota-bot/api/shared"
)

// Step is one stage of the match wizard, in fixed forward order:
// create -> accept -> teams -> playing -> ended -> post -> done
type Step string

const (
	StepCreate  Step = "create"
	StepAccept  Step = "accept"
	StepTeams   Step = "teams"
	StepPlaying Step = "playing"
	StepEnded   Step = "ended"
	StepPost    Step = "post"
	StepDone    Step = "done"
)

// DeriveStep computes the wizard step for the current match. A nil match means no
// non-finalized match exists and the wizard sits at the create step. The ended/post
// boundary is the one place server status alone is not enough: both live under
// StatusEnded, and inPostGame records whether the explicit go-to-post-game call
// has succeeded for this match.
func DeriveStep(m *shared.Match, inPostGame bool) Step {
	if m == nil {
		return StepCreate
	}
	switch m.Status {
	case shared.StatusCreated:
		return StepAccept
	case shared.StatusTeamsGenerated:
		return StepTeams
	case shared.StatusStarted:
		return StepPlaying
	case shared.StatusEnded:
		if inPostGame {
			return StepPost
		}
		return StepEnded
	case shared.StatusFinalized:
		return StepDone
	}
	// Unknown forward-compatible status values park the wizard at accept rather than
	// crashing the render
	return StepAccept
}

// CanChangeInvite is the invite-response gating predicate. Pending may move to accepted
// or rejected, accepted and rejected may swap into each other, and nothing ever moves
// back to pending. The server enforces this independently; the client check only decides
// which affordances to offer.
func CanChangeInvite(from, to shared.InviteResponse) bool {
	if to == shared.InvitePending {
		return false
	}
	if to != shared.InviteAccepted && to != shared.InviteRejected {
		return false
	}
	return to != from
}

// ValidateCreateMatch guards the create transition: both the place name and the
// scheduled time must be non-empty
func ValidateCreateMatch(placeName string, placedAtISO string) error {
	if strings.TrimSpace(placeName) == "" {
		return fmt.Errorf("place name is required")
	}
	if strings.TrimSpace(placedAtISO) == "" {
		return fmt.Errorf("scheduled time is required")
	}
	return nil
}

// ValidateAdvanceToTeams guards the accept -> teams transition: at least MinPlayers
// accepted and not over the configured capacity
func ValidateAdvanceToTeams(acceptedCount, maxPlayers int) error {
	if acceptedCount < MinPlayers {
		return fmt.Errorf("need at least %d accepted players, have %d", MinPlayers, acceptedCount)
	}
	if OverLimit(acceptedCount, maxPlayers) {
		return fmt.Errorf("accepted players (%d) exceed the limit of %d", acceptedCount, maxPlayers)
	}
	return nil
}

// ValidateAssignTeams guards committing a generated option. Assignment is one-time: once
// teams are assigned, regeneration is advisory only and the swap workflow takes over.
func ValidateAssignTeams(opt *shared.TeamOption, alreadyAssigned bool) error {
	if alreadyAssigned {
		return fmt.Errorf("teams are already assigned, use swap instead")
	}
	if opt == nil {
		return fmt.Errorf("no generated team option selected")
	}
	if len(opt.TeamA) == 0 || len(opt.TeamB) == 0 {
		return fmt.Errorf("selected option must have players on both sides")
	}
	return nil
}

// ValidateStart guards the teams -> playing transition
func ValidateStart(teamsAssigned bool) error {
	if !teamsAssigned {
		return fmt.Errorf("teams must be assigned before the match can start")
	}
	return nil
}

// ValidateSwap guards the post-assignment swap workflow: exactly one player from each
// assigned side
func ValidateSwap(a, b *shared.MatchPlayer) error {
	if a == nil || b == nil {
		return fmt.Errorf("swap needs one player from each team")
	}
	if a.Team != shared.TeamA {
		return fmt.Errorf("%s is not on team A", a.PlayerName)
	}
	if b.Team != shared.TeamB {
		return fmt.Errorf("%s is not on team B", b.PlayerName)
	}
	return nil
}

// ValidateGoal guards goal entry: the scorer and the free-text clock time are required,
// the assist is optional
func ValidateGoal(scorerPlayerID, clock string) error {
	if strings.TrimSpace(scorerPlayerID) == "" {
		return fmt.Errorf("a scorer is required")
	}
	if strings.TrimSpace(clock) == "" {
		return fmt.Errorf("a goal time is required")
	}
	return nil
}

// ClampOptionIndex clamps the selected team-option index into the valid range of the
// current option list. The selection defaults toward 0 and an out-of-range index snaps
// to the nearest valid one, so stale selections survive regeneration without error.
func ClampOptionIndex(idx, length int) int {
	if length <= 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	return idx
}

// Strategy selects one of the four fixed server-side team generation strategies
type Strategy int

const (
	StrategyBalanced Strategy = 1
	StrategyRandom   Strategy = 2
	StrategyPosition Strategy = 3
	StrategySynergy  Strategy = 4
)

var strategyNames = map[string]Strategy{
	"balanced": StrategyBalanced,
	"random":   StrategyRandom,
	"position": StrategyPosition,
	"synergy":  StrategySynergy,
}

// ParseStrategy maps a user-typed strategy name to its enum value
func ParseStrategy(name string) (Strategy, error) {
	s, ok := strategyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown strategy %q, expected one of balanced, random, position, synergy", name)
	}
	return s, nil
}
