/* colors.go
 * Contains the team-color sub-workflow helpers and the fuzzy name resolution used to map
 * user-typed color and player names onto the records the backend knows about.
 */

package logic

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"patota-bot/api/shared"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// RandomColorPair picks two distinct colors from the group's registered palette.
// Preconditions: Receives the palette fetched from the backend
// Postconditions: Returns two different colors, or an error when the palette has fewer
// than two entries
func RandomColorPair(palette []shared.TeamColor) (shared.TeamColor, shared.TeamColor, error) {
	if len(palette) < 2 {
		return shared.TeamColor{}, shared.TeamColor{}, fmt.Errorf("group needs at least 2 registered colors, has %d", len(palette))
	}
	i := rand.Intn(len(palette))
	j := rand.Intn(len(palette) - 1)
	if j >= i {
		j++
	}
	return palette[i], palette[j], nil
}

// SameColorWarning reports whether both teams were given the same color. Selecting the
// same color twice is allowed, it only produces a warning in the response.
func SameColorWarning(a, b shared.TeamColor) bool {
	return a.TeamColorID != "" && a.TeamColorID == b.TeamColorID
}

// ResolveColor matches a user-typed color name against the palette, tolerating typos the
// same way team names are matched elsewhere. An exact (case-insensitive) match always
// wins over a fuzzy one.
func ResolveColor(input string, palette []shared.TeamColor) (shared.TeamColor, error) {
	lookup := make(map[string]shared.TeamColor)
	var names []string
	for _, c := range palette {
		lower := strings.ToLower(c.Name)
		lookup[lower] = c
		names = append(names, lower)
	}

	lowerInput := strings.ToLower(strings.TrimSpace(input))
	if c, ok := lookup[lowerInput]; ok {
		return c, nil
	}

	// RankFind returns matches in palette order; sort by distance so the closest wins
	results := fuzzy.RankFind(lowerInput, names)
	if len(results) == 0 {
		return shared.TeamColor{}, fmt.Errorf("no color matching %q in the group palette", input)
	}
	sort.Sort(results)
	return lookup[results[0].Target], nil
}

// ResolvePlayer matches a user-typed player name against a match roster. Works like
// ResolveColor: exact case-insensitive match first, then best fuzzy rank.
func ResolvePlayer(input string, players []shared.MatchPlayer) (shared.MatchPlayer, error) {
	lookup := make(map[string]shared.MatchPlayer)
	var names []string
	for _, p := range players {
		lower := strings.ToLower(p.PlayerName)
		lookup[lower] = p
		names = append(names, lower)
	}

	lowerInput := strings.ToLower(strings.TrimSpace(input))
	if p, ok := lookup[lowerInput]; ok {
		return p, nil
	}

	results := fuzzy.RankFind(lowerInput, names)
	if len(results) == 0 {
		return shared.MatchPlayer{}, fmt.Errorf("no player matching %q in this match", input)
	}
	sort.Sort(results)
	return lookup[results[0].Target], nil
}
