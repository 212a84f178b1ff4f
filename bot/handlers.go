/* handlers.go
 * Contains the message router and the session command handlers. Handlers accept the
 * DiscordSession interface so they can be exercised against a mock session in tests.
 * Match wizard command handlers live in handlers_match.go.
 */

package bot

import (
	"context"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author.ID == botUserID {
		return
	}

	// Route to appropriate handler. Longer commands are matched before their prefixes
	// ($options before $option, $voteas before $vote).
	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$login"):
		b.loginHandler(session, message)

	case startsWith(message.Content, "$logout"):
		b.logoutHandler(session, message)

	case startsWith(message.Content, "$accounts"):
		b.accountsHandler(session, message)

	case startsWith(message.Content, "$switch"):
		b.switchHandler(session, message)

	case startsWith(message.Content, "$group"):
		b.groupHandler(session, message)

	case startsWith(message.Content, "$status"):
		b.statusHandler(session, message)

	case startsWith(message.Content, "$creatematch"):
		b.createMatchHandler(session, message)

	case startsWith(message.Content, "$accept"):
		b.acceptHandler(session, message)

	case startsWith(message.Content, "$reject"):
		b.rejectHandler(session, message)

	case startsWith(message.Content, "$advance"):
		b.advanceHandler(session, message)

	case startsWith(message.Content, "$colors"):
		b.colorsHandler(session, message)

	case startsWith(message.Content, "$generate"):
		b.generateHandler(session, message)

	case startsWith(message.Content, "$options"):
		b.optionsHandler(session, message)

	case startsWith(message.Content, "$option"):
		b.optionHandler(session, message)

	case startsWith(message.Content, "$assign"):
		b.assignHandler(session, message)

	case startsWith(message.Content, "$swap"):
		b.swapHandler(session, message)

	case startsWith(message.Content, "$start"):
		b.startHandler(session, message)

	case startsWith(message.Content, "$end"):
		b.endHandler(session, message)

	case startsWith(message.Content, "$postgame"):
		b.postGameHandler(session, message)

	case startsWith(message.Content, "$score"):
		b.scoreHandler(session, message)

	case startsWith(message.Content, "$removegoal"):
		b.removeGoalHandler(session, message)

	case startsWith(message.Content, "$goal"):
		b.goalHandler(session, message)

	case startsWith(message.Content, "$voteas"):
		b.voteAsHandler(session, message)

	case startsWith(message.Content, "$vote"):
		b.voteHandler(session, message)

	case startsWith(message.Content, "$finalize"):
		b.finalizeHandler(session, message)

	case startsWith(message.Content, "$rewind"):
		b.rewindHandler(session, message)
	}
}

// reply sends the operation result to the channel, turning an error into its message text.
// Errors are user-facing by design: the facade phrases them as instructions.
func reply(session DiscordSession, message *discordgo.MessageCreate, res string, err error) {
	if err != nil {
		log.Println(err)
		res = err.Error()
	}
	if res == "" {
		res = "Done."
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Patota Bot\n")
	res.WriteString("Session:\n")
	res.WriteString("`$login email password`: sign in to the patota backend\n")
	res.WriteString("`$logout`: sign out the active account\n")
	res.WriteString("`$accounts`: list stored accounts, `$switch email` changes the active one\n")
	res.WriteString("`$group id`: set the group the bot operates on\n")
	res.WriteString("Match:\n")
	res.WriteString("`$status`: show the current match and its step\n")
	res.WriteString("`$creatematch \"place\" yyyy-mm-dd hh:mm`: schedule a match (admin)\n")
	res.WriteString("`$accept [player]` / `$reject [player]`: answer an invite. Without a name you answer your own; naming someone else needs admin\n")
	res.WriteString("`$advance`: close invites and move to team selection (admin)\n")
	res.WriteString("`$generate strategy [playersPerTeam] [gk]`: build team options with balanced, random, position or synergy\n")
	res.WriteString("`$options`: list generated options, `$option n|next|prev` browses them\n")
	res.WriteString("`$assign`: commit the selected option (admin), `$swap a b` exchanges players afterwards\n")
	res.WriteString("`$colors a b` / `$colors random` / `$colors unlock`: manage team colors (admin)\n")
	res.WriteString("`$start` / `$end`: start and end play (admin)\n")
	res.WriteString("Post-game:\n")
	res.WriteString("`$postgame`: open the post-game phase (admin)\n")
	res.WriteString("`$score a b`, `$goal \"scorer\" [\"assist\"] clock`, `$removegoal n`: record the result (admin)\n")
	res.WriteString("`$vote player`: cast your MVP vote, `$voteas voter player` votes on someone's behalf (admin)\n")
	res.WriteString("`$finalize`: close the match for good (admin), `$rewind` rolls back one stage (admin)\n")
	res.WriteString("Player, place and color names have fuzzy matching; names with spaces need quotes (e.g. \"Campo 7\")\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// loginHandler handles the $login command with a DiscordSession interface
func (b *Bot) loginHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 2 {
		reply(session, message, "Usage: $login email password", nil)
		return
	}
	res, err := b.ApiPtr.Login(context.Background(), args[0], args[1])
	reply(session, message, res, err)
}

// logoutHandler handles the $logout command with a DiscordSession interface
func (b *Bot) logoutHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.ApiPtr.Logout()
	reply(session, message, res, err)
}

// accountsHandler handles the $accounts command with a DiscordSession interface
func (b *Bot) accountsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.ApiPtr.Accounts()
	reply(session, message, res, err)
}

// switchHandler handles the $switch command with a DiscordSession interface
func (b *Bot) switchHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 1 {
		reply(session, message, "Usage: $switch email", nil)
		return
	}
	res, err := b.ApiPtr.SwitchAccount(args[0])
	reply(session, message, res, err)
}

// groupHandler handles the $group command with a DiscordSession interface
func (b *Bot) groupHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) != 1 {
		reply(session, message, "Usage: $group group-id", nil)
		return
	}
	res, err := b.ApiPtr.SetGroup(context.Background(), args[0])
	reply(session, message, res, err)
}

// statusHandler handles the $status command with a DiscordSession interface
func (b *Bot) statusHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.ApiPtr.Status(context.Background())
	reply(session, message, res, err)
}
