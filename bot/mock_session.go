/* mock_session.go
 * Contains a recording DiscordSession fake. Every message a handler sends is captured in
 * order, so tests assert on what would have reached the channel.
 */

package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// MockDiscordSession records everything sent through it
type MockDiscordSession struct {
	// SentMessages holds the captured sends in order
	SentMessages []MockMessage
	// SendErr, when set, makes every send fail with it
	SendErr error
}

// MockMessage is one captured send
type MockMessage struct {
	ChannelID string
	Content   string
}

// ChannelMessageSend implements DiscordSession by recording instead of sending
func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.SendErr != nil {
		return nil, m.SendErr
	}

	m.SentMessages = append(m.SentMessages, MockMessage{
		ChannelID: channelID,
		Content:   content,
	})

	return &discordgo.Message{
		ID:        fmt.Sprintf("sent-%d", len(m.SentMessages)),
		ChannelID: channelID,
		Content:   content,
	}, nil
}

// GetLastMessage returns the most recent capture, or a zero MockMessage when nothing
// was sent
func (m *MockDiscordSession) GetLastMessage() MockMessage {
	if len(m.SentMessages) == 0 {
		return MockMessage{}
	}
	return m.SentMessages[len(m.SentMessages)-1]
}

// ClearMessages drops the captured sends
func (m *MockDiscordSession) ClearMessages() {
	m.SentMessages = nil
}

// NewMockDiscordSession creates an empty recording session
func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{
		SentMessages: make([]MockMessage, 0),
	}
}
