/* session_interface.go
 * Contains the narrow slice of the Discord session the handlers depend on, so tests can
 * swap in a recording fake instead of a live gateway connection.
 */

package bot

import "github.com/bwmarrin/discordgo"

// DiscordSession is what a handler needs from Discord: the ability to post a message.
// Announcements and command replies both go through it.
type DiscordSession interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Ensure *discordgo.Session implements DiscordSession
var _ DiscordSession = (*discordgo.Session)(nil)
