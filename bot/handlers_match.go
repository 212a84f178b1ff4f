/* handlers_match.go
 * Contains the match wizard command handlers: lifecycle transitions, team selection and
 * the post-game phase. All of them parse arguments here and delegate the work to the API.
 */

package bot

import (
	"context"
	"strconv"
	"strings"

	"patota-bot/api/shared"

	"github.com/bwmarrin/discordgo"
)

// createMatchHandler handles the $creatematch command with a DiscordSession interface
func (b *Bot) createMatchHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 3 {
		reply(session, message, "Usage: $creatematch \"place\" yyyy-mm-dd hh:mm", nil)
		return
	}
	res, err := b.ApiPtr.CreateMatch(context.Background(), args[0], args[1], args[2])
	reply(session, message, res, err)
}

// acceptHandler handles the $accept command with a DiscordSession interface
func (b *Bot) acceptHandler(session DiscordSession, message *discordgo.MessageCreate) {
	b.inviteResponse(session, message, shared.InviteAccepted)
}

// rejectHandler handles the $reject command with a DiscordSession interface
func (b *Bot) rejectHandler(session DiscordSession, message *discordgo.MessageCreate) {
	b.inviteResponse(session, message, shared.InviteRejected)
}

func (b *Bot) inviteResponse(session DiscordSession, message *discordgo.MessageCreate, response shared.InviteResponse) {
	args := splitArgs(message.Content)
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	res, err := b.ApiPtr.RespondInvite(context.Background(), target, response)
	reply(session, message, res, err)
}

// advanceHandler handles the $advance command with a DiscordSession interface
func (b *Bot) advanceHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.ApiPtr.AdvanceToTeams(context.Background())
	reply(session, message, res, err)
}

// colorsHandler handles the $colors command with a DiscordSession interface.
// Supports `$colors a b`, `$colors random` and `$colors unlock`.
func (b *Bot) colorsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	switch {
	case len(args) == 1 && strings.EqualFold(args[0], "random"):
		res, err := b.ApiPtr.SetColorsRandom(context.Background())
		reply(session, message, res, err)
	case len(args) == 1 && strings.EqualFold(args[0], "unlock"):
		res, err := b.ApiPtr.UnlockColors(context.Background())
		reply(session, message, res, err)
	case len(args) == 2:
		res, err := b.ApiPtr.SetColorsManual(context.Background(), args[0], args[1])
		reply(session, message, res, err)
	default:
		reply(session, message, "Usage: $colors teamAColor teamBColor | $colors random | $colors unlock", nil)
	}
}

// generateHandler handles the $generate command with a DiscordSession interface.
// Usage: $generate strategy [playersPerTeam] [gk]
func (b *Bot) generateHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) < 1 {
		reply(session, message, "Usage: $generate balanced|random|position|synergy [playersPerTeam] [gk]", nil)
		return
	}
	playersPerTeam := 0
	includeGoalkeepers := false
	for _, arg := range args[1:] {
		if strings.EqualFold(arg, "gk") {
			includeGoalkeepers = true
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			reply(session, message, "Usage: $generate balanced|random|position|synergy [playersPerTeam] [gk]", nil)
			return
		}
		playersPerTeam = n
	}
	res, err := b.ApiPtr.GenerateTeams(context.Background(), args[0], playersPerTeam, includeGoalkeepers)
	reply(session, message, res, err)
}

// optionsHandler handles the $options command with a DiscordSession interface
func (b *Bot) optionsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.ApiPtr.Options()
	reply(session, message, res, err)
}

// optionHandler handles the $option command with a DiscordSession interface.
// Supports `$option n`, `$option next` and `$option prev`.
func (b *Bot) optionHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 1 {
		reply(session, message, "Usage: $option n | $option next | $option prev", nil)
		return
	}
	var res string
	var err error
	switch {
	case strings.EqualFold(args[0], "next"):
		res, err = b.ApiPtr.NextOption()
	case strings.EqualFold(args[0], "prev"):
		res, err = b.ApiPtr.PrevOption()
	default:
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			reply(session, message, "Usage: $option n | $option next | $option prev", nil)
			return
		}
		res, err = b.ApiPtr.SelectOption(n)
	}
	reply(session, message, res, err)
}

// assignHandler handles the $assign command with a DiscordSession interface
func (b *Bot) assignHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.ApiPtr.AssignTeams(context.Background())
	reply(session, message, res, err)
}

// swapHandler handles the $swap command with a DiscordSession interface
func (b *Bot) swapHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 2 {
		reply(session, message, "Usage: $swap teamAPlayer teamBPlayer", nil)
		return
	}
	res, err := b.ApiPtr.Swap(context.Background(), args[0], args[1])
	reply(session, message, res, err)
}

// startHandler handles the $start command with a DiscordSession interface
func (b *Bot) startHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.ApiPtr.StartMatch(context.Background())
	reply(session, message, res, err)
}

// endHandler handles the $end command with a DiscordSession interface
func (b *Bot) endHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.ApiPtr.EndMatch(context.Background())
	reply(session, message, res, err)
}

// postGameHandler handles the $postgame command with a DiscordSession interface
func (b *Bot) postGameHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.ApiPtr.GoToPostGame(context.Background())
	reply(session, message, res, err)
}

// scoreHandler handles the $score command with a DiscordSession interface
func (b *Bot) scoreHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 2 {
		reply(session, message, "Usage: $score teamAGoals teamBGoals", nil)
		return
	}
	teamA, errA := strconv.Atoi(args[0])
	teamB, errB := strconv.Atoi(args[1])
	if errA != nil || errB != nil {
		reply(session, message, "Usage: $score teamAGoals teamBGoals", nil)
		return
	}
	res, err := b.ApiPtr.SetScore(context.Background(), teamA, teamB)
	reply(session, message, res, err)
}

// goalHandler handles the $goal command with a DiscordSession interface.
// Two args are scorer and clock, three args are scorer, assist and clock.
func (b *Bot) goalHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	var res string
	var err error
	switch len(args) {
	case 2:
		res, err = b.ApiPtr.AddGoal(context.Background(), args[0], "", args[1])
	case 3:
		res, err = b.ApiPtr.AddGoal(context.Background(), args[0], args[1], args[2])
	default:
		reply(session, message, "Usage: $goal \"scorer\" [\"assist\"] clock", nil)
		return
	}
	reply(session, message, res, err)
}

// removeGoalHandler handles the $removegoal command with a DiscordSession interface
func (b *Bot) removeGoalHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 1 {
		reply(session, message, "Usage: $removegoal n", nil)
		return
	}
	n, convErr := strconv.Atoi(args[0])
	if convErr != nil {
		reply(session, message, "Usage: $removegoal n", nil)
		return
	}
	res, err := b.ApiPtr.RemoveGoal(context.Background(), n)
	reply(session, message, res, err)
}

// voteHandler handles the $vote command with a DiscordSession interface
func (b *Bot) voteHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 1 {
		reply(session, message, "Usage: $vote player", nil)
		return
	}
	res, err := b.ApiPtr.Vote(context.Background(), args[0])
	reply(session, message, res, err)
}

// voteAsHandler handles the $voteas command with a DiscordSession interface
func (b *Bot) voteAsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 2 {
		reply(session, message, "Usage: $voteas voter player", nil)
		return
	}
	res, err := b.ApiPtr.VoteAs(context.Background(), args[0], args[1])
	reply(session, message, res, err)
}

// finalizeHandler handles the $finalize command with a DiscordSession interface
func (b *Bot) finalizeHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.ApiPtr.FinalizeMatch(context.Background())
	reply(session, message, res, err)
}

// rewindHandler handles the $rewind command with a DiscordSession interface
func (b *Bot) rewindHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.ApiPtr.RewindMatch(context.Background())
	reply(session, message, res, err)
}
