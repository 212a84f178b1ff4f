/* derive.go
 * Contains the pure derivation functions over raw match payloads: roster partitioning, capacity
 * resolution, current-match selection and the permission predicate. Upstream payloads are loosely
 * typed, so every function here must return a defensive default instead of failing on absent data.
 */

package logic

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"patota-bot/api/shared"
)

const (
	// DefaultMaxPlayers is used when the group settings carry no capacity field at all
	DefaultMaxPlayers = 12
	// MinPlayers is the hard floor below which a capacity value is never trusted
	MinPlayers = 2
)

// WeightPlaceholder is rendered in place of a weight that is NaN or infinite
const WeightPlaceholder = "-"

// PartitionRoster splits a match's player list by invite response.
// Preconditions: Receives the raw player slice from a match payload, possibly nil
// Postconditions: Returns three slices (accepted, rejected, pending); players with an
// unknown invite response are treated as pending, never dropped silently into accepted
func PartitionRoster(players []shared.MatchPlayer) (accepted, rejected, pending []shared.MatchPlayer) {
	accepted = []shared.MatchPlayer{}
	rejected = []shared.MatchPlayer{}
	pending = []shared.MatchPlayer{}
	for _, p := range players {
		switch p.InviteResponse {
		case shared.InviteAccepted:
			accepted = append(accepted, p)
		case shared.InviteRejected:
			rejected = append(rejected, p)
		default:
			pending = append(pending, p)
		}
	}
	return accepted, rejected, pending
}

// MaxPlayers resolves the configured match capacity from group settings.
// The backend has shipped this value under three different field names, tried here in
// priority order: maxPlayers, then maxPlayersPerMatch, then maxPlayersInMatch.
// Missing all three falls back to DefaultMaxPlayers; any resolved value below MinPlayers
// is floored to MinPlayers.
func MaxPlayers(settings shared.GroupSettings) int {
	max := DefaultMaxPlayers
	switch {
	case settings.MaxPlayers != nil:
		max = *settings.MaxPlayers
	case settings.MaxPlayersPerMatch != nil:
		max = *settings.MaxPlayersPerMatch
	case settings.MaxPlayersInMatch != nil:
		max = *settings.MaxPlayersInMatch
	}
	if max < MinPlayers {
		max = MinPlayers
	}
	return max
}

// OverLimit reports whether the accepted player count exceeds the configured capacity
func OverLimit(acceptedCount, maxPlayers int) bool {
	return acceptedCount > maxPlayers
}

// SelectCurrentMatch picks the match the UI should treat as "current".
// Preconditions: Receives the full match list for a group, in any order
// Postconditions: Returns a pointer to the most recently placed match whose status is not
// Finalized, or nil when the list is empty or every match is finalized. The input slice is
// not modified.
func SelectCurrentMatch(matches []shared.Match) *shared.Match {
	candidates := make([]shared.Match, 0, len(matches))
	for _, m := range matches {
		if m.Status != shared.StatusFinalized {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].PlacedAt.After(candidates[j].PlacedAt)
	})
	current := candidates[0]
	return &current
}

// CanAct is the permission predicate used before every mutating call. An admin may act on
// any player; a non-admin may only act on the player record matching their own active
// player id. Ids are compared after trimming and case folding because they arrive from
// two differently-cased backend serializers.
func CanAct(isAdmin bool, activePlayerID, targetPlayerID string) bool {
	if isAdmin {
		return true
	}
	active := strings.TrimSpace(activePlayerID)
	if active == "" {
		return false
	}
	return strings.EqualFold(active, strings.TrimSpace(targetPlayerID))
}

// FormatWeight renders a player weight with 3 decimal places. NaN and infinities render
// as WeightPlaceholder rather than propagating garbage into chat output.
func FormatWeight(w float64) string {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return WeightPlaceholder
	}
	return fmt.Sprintf("%.3f", w)
}

// CombineDateTime builds the absolute timestamp submitted to the server from the two
// separate inputs a user types: a date ("2006-01-02") and a wall-clock time ("15:04").
// Preconditions: Receives the date and time strings exactly as entered
// Postconditions: Returns the combined moment in UTC, or an error naming the part that
// failed to parse
func CombineDateTime(dateStr, timeStr string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", dateStr)
	}
	t, err := time.Parse("15:04", strings.TrimSpace(timeStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
