/* bot.go
 * Contains the Bot struct and the shared helpers for message parsing. Requires a discord
 * bot token and an ApiPtr, both of which are passed in from main.go
 */

package bot

import (
	"fmt"
	"strings"

	"patota-bot/api/api"

	"github.com/go-andiamo/splitter"
)

type Bot struct {
	BotToken string
	ApiPtr   *api.API
	// AnnounceChannelID is the channel unprompted announcements go to (webhook events).
	// Empty disables announcements.
	AnnounceChannelID string

	session DiscordSession
}

func NewBot(botToken string, apiPtr *api.API) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}

	return &Bot{
		BotToken: botToken,
		ApiPtr:   apiPtr,
	}, nil
}

// Announce posts a message to the configured announcement channel. A no-op until Run
// has opened the Discord session or when no channel is configured.
func (b *Bot) Announce(content string) {
	if b.session == nil || b.AnnounceChannelID == "" {
		return
	}
	b.session.ChannelMessageSend(b.AnnounceChannelID, content)
}

// splitArgs splits a command message into its arguments, dropping the command itself.
// We use splitter here instead of go's built in splitter so place and player names that
// contain spaces (e.g. "Campo 7") are recognised as one argument, not two.
// An unbalanced quote makes Split fail; that returns an empty arg list so the handler
// answers with its usage line instead of the bot falling over mid-chat.
func splitArgs(content string) []string {
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	parts, err := spaceSplitter.Split(content)
	if err != nil || len(parts) == 0 {
		return nil
	}
	args := make([]string, 0, len(parts))
	for _, p := range parts[1:] {
		p = strings.Trim(strings.TrimSpace(p), "\"")
		if p != "" {
			args = append(args, p)
		}
	}
	return args
}

// Helper function to check if a string starts with a given substring
// Preconditions: Receives an input string and a substring
// Postconditions: Returns true if the substring is at the start of the string, else returns false
func startsWith(inputString string, substring string) bool {
	if len(inputString) < len(substring) {
		return false
	}
	return inputString[:len(substring)] == substring
}
