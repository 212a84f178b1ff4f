/* teams.go
 * Contains the team selection phase: generating and browsing candidate team splits,
 * committing one of them, swapping players afterwards and the uniform color sub-workflow.
 */

package api

import (
	"context"
	"fmt"
	"strings"

	"patota-bot/api/client"
	"patota-bot/api/logic"
	"patota-bot/api/shared"
)

// GenerateTeams asks the backend for candidate team splits and caches them as the option
// carousel for this match. Regenerating replaces the carousel and resets the selection.
func (a *API) GenerateTeams(ctx context.Context, strategyName string, playersPerTeam int, includeGoalkeepers bool) (string, error) {
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

	strategy, err := logic.ParseStrategy(strategyName)
	if err != nil {
		return "", err
	}
	params := client.GenerationParams{
		Strategy:           int(strategy),
		PlayersPerTeam:     playersPerTeam,
		IncludeGoalkeepers: includeGoalkeepers,
	}
	options, err := a.Backend.GenerateTeamOptions(ctx, m.MatchID, params)
	if err != nil {
		return "", err
	}
	if len(options) == 0 {
		return "", fmt.Errorf("the backend returned no team options")
	}

	a.mu.Lock()
	a.options = options
	a.optionsMatchID = m.MatchID
	a.selectedOption = 0
	a.mu.Unlock()

	return fmt.Sprintf("Generated %d team options with the %s strategy.\n%s",
		len(options), strategyName, a.renderSelectedOption()), nil
}

// Options renders the whole carousel with the selected option marked
func (a *API) Options() (string, error) {
	a.mu.Lock()
	options := a.options
	selected := a.selectedOption
	a.mu.Unlock()

	if len(options) == 0 {
		return "", fmt.Errorf("no team options generated yet, use $generate first")
	}
	var res strings.Builder
	for i, opt := range options {
		marker := " "
		if i == selected {
			marker = "*"
		}
		res.WriteString(fmt.Sprintf("%s Option %d: score %s, weight diff %s\n",
			marker, i+1, logic.FormatWeight(opt.Score), logic.FormatWeight(opt.WeightDiff)))
	}
	return res.String(), nil
}

// SelectOption picks one carousel entry by its 1-based position
func (a *API) SelectOption(n int) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.options) == 0 {
		return "", fmt.Errorf("no team options generated yet, use $generate first")
	}
	a.selectedOption = logic.ClampOptionIndex(n-1, len(a.options))
	return a.renderSelectedOptionLocked(), nil
}

// NextOption moves the carousel selection forward, stopping at the last entry
func (a *API) NextOption() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.options) == 0 {
		return "", fmt.Errorf("no team options generated yet, use $generate first")
	}
	a.selectedOption = logic.ClampOptionIndex(a.selectedOption+1, len(a.options))
	return a.renderSelectedOptionLocked(), nil
}

// PrevOption moves the carousel selection backward, stopping at the first entry
func (a *API) PrevOption() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.options) == 0 {
		return "", fmt.Errorf("no team options generated yet, use $generate first")
	}
	a.selectedOption = logic.ClampOptionIndex(a.selectedOption-1, len(a.options))
	return a.renderSelectedOptionLocked(), nil
}

// AssignTeams commits the selected option as the match's team assignment. One-time: once
// committed the carousel is cleared and further changes go through Swap.
func (a *API) AssignTeams(ctx context.Context) (string, error) {
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

	a.mu.Lock()
	var opt *shared.TeamOption
	if len(a.options) > 0 {
		idx := logic.ClampOptionIndex(a.selectedOption, len(a.options))
		opt = &a.options[idx]
	}
	a.mu.Unlock()

	if err := logic.ValidateAssignTeams(opt, m.TeamsAssigned); err != nil {
		return "", err
	}
	if err := a.Backend.AssignTeams(ctx, m.MatchID, *opt); err != nil {
		return "", err
	}

	a.mu.Lock()
	a.options = nil
	a.optionsMatchID = ""
	a.selectedOption = 0
	a.mu.Unlock()

	m, err = a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	return "Teams assigned.\n" + a.renderMatch(m), nil
}

// Swap exchanges one assigned player from each side, matched by name. The first name must
// resolve to a team A player and the second to a team B player.
func (a *API) Swap(ctx context.Context, nameA, nameB string) (string, error) {
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

	pa, err := logic.ResolvePlayer(nameA, m.Players)
	if err != nil {
		return "", err
	}
	pb, err := logic.ResolvePlayer(nameB, m.Players)
	if err != nil {
		return "", err
	}
	if err := logic.ValidateSwap(&pa, &pb); err != nil {
		return "", err
	}
	if err := a.Backend.SwapPlayers(ctx, m.MatchID, pa.MatchPlayerID, pb.MatchPlayerID); err != nil {
		return "", err
	}

	m, err = a.currentMatch(ctx, acc)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Swapped %s and %s.\n%s", pa.PlayerName, pb.PlayerName, a.renderMatch(m)), nil
}

// SetColorsManual applies two palette colors picked by name. Picking the same color for
// both sides is allowed and only produces a warning.
func (a *API) SetColorsManual(ctx context.Context, nameA, nameB string) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	m, palette, err := a.colorContext(ctx, acc)
	if err != nil {
		return "", err
	}

	ca, err := logic.ResolveColor(nameA, palette)
	if err != nil {
		return "", err
	}
	cb, err := logic.ResolveColor(nameB, palette)
	if err != nil {
		return "", err
	}
	if err := a.Backend.SetMatchColors(ctx, m.MatchID, ca.TeamColorID, cb.TeamColorID); err != nil {
		return "", err
	}

	res := fmt.Sprintf("Colors set: team A wears %s, team B wears %s.", ca.Name, cb.Name)
	if logic.SameColorWarning(ca, cb) {
		res += "\nWarning: both teams wear the same color."
	}
	return res, nil
}

// SetColorsRandom draws two distinct palette colors and applies them
func (a *API) SetColorsRandom(ctx context.Context) (string, error) {
	acc, err := a.activeAccount()
	if err != nil {
		return "", err
	}
	if err := requireAdmin(acc); err != nil {
		return "", err
	}
	m, palette, err := a.colorContext(ctx, acc)
	if err != nil {
		return "", err
	}

	ca, cb, err := logic.RandomColorPair(palette)
	if err != nil {
		return "", err
	}
	if err := a.Backend.SetMatchColors(ctx, m.MatchID, ca.TeamColorID, cb.TeamColorID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Colors drawn: team A wears %s, team B wears %s.", ca.Name, cb.Name), nil
}

// UnlockColors re-opens color selection after the backend has locked it
func (a *API) UnlockColors(ctx context.Context) (string, error) {
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
		return "", fmt.Errorf("no current match")
	}
	if !m.ColorsLocked {
		return "Colors are not locked.", nil
	}
	if err := a.Backend.UnlockMatchColors(ctx, m.MatchID); err != nil {
		return "", err
	}
	return "Colors unlocked, pick again with $colors.", nil
}

// colorContext fetches the current match and the group palette, and rejects color changes
// while the match's colors are locked
func (a *API) colorContext(ctx context.Context, acc shared.Account) (*shared.Match, []shared.TeamColor, error) {
	m, err := a.currentMatch(ctx, acc)
	if err != nil {
		return nil, nil, err
	}
	if m == nil {
		return nil, nil, fmt.Errorf("no current match")
	}
	if m.ColorsLocked {
		return nil, nil, fmt.Errorf("colors are locked for this match, use $colors unlock first")
	}
	gid, err := a.groupID(acc)
	if err != nil {
		return nil, nil, err
	}
	palette, err := a.Backend.TeamColors(ctx, gid)
	if err != nil {
		return nil, nil, err
	}
	return m, palette, nil
}

// renderSelectedOption renders one carousel entry with both rosters and their weights
func (a *API) renderSelectedOption() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderSelectedOptionLocked()
}

func (a *API) renderSelectedOptionLocked() string {
	if len(a.options) == 0 {
		return ""
	}
	idx := logic.ClampOptionIndex(a.selectedOption, len(a.options))
	opt := a.options[idx]

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Option %d of %d (score %s)\n", idx+1, len(a.options), logic.FormatWeight(opt.Score)))
	res.WriteString(fmt.Sprintf("Team A (weight %s): %s\n", logic.FormatWeight(opt.TeamAWeight), weightedNames(opt.TeamA)))
	res.WriteString(fmt.Sprintf("Team B (weight %s): %s\n", logic.FormatWeight(opt.TeamBWeight), weightedNames(opt.TeamB)))
	if len(opt.Unassigned) > 0 {
		res.WriteString(fmt.Sprintf("Unassigned: %s\n", weightedNames(opt.Unassigned)))
	}
	return res.String()
}

func weightedNames(players []shared.PlayerWeight) string {
	if len(players) == 0 {
		return "-"
	}
	names := make([]string, 0, len(players))
	for _, p := range players {
		name := fmt.Sprintf("%s (%s)", p.PlayerName, logic.FormatWeight(p.Weight))
		if p.IsGoalkeeper {
			name = fmt.Sprintf("%s (gk, %s)", p.PlayerName, logic.FormatWeight(p.Weight))
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
