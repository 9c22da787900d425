package chatbot_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/60cod/ygna-chat/chatbot"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryTimestamps(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	f := chatbot.NewFactory(
		chatbot.WithClock(func() time.Time { return time.Date(2025, 1, 1, 3, 5, 0, 0, time.UTC) }),
		chatbot.WithLocation(seoul),
	)
	assert.Equal(t, "12:05 PM", f.UserMessage("hi").Timestamp)

	f = testFactory()
	assert.Equal(t, "3:09 PM", f.InitialMessage().Timestamp)
}

func TestFactoryIDs(t *testing.T) {
	f := testFactory()
	assert.Equal(t, "msg-1", f.InitialMessage().ID)
	assert.Equal(t, "msg-2", f.UserMessage("x").ID)

	ids := chatbot.UUIDGenerator()
	a, b := ids(), ids()
	assert.NotEqual(t, a, b)
	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestFactoryMessages(t *testing.T) {
	f := testFactory()

	greeting := f.InitialMessage()
	assert.True(t, greeting.IsBot)
	assert.Contains(t, greeting.Content, chatbot.DefaultProfile.Name)
	assert.Empty(t, greeting.Buttons)

	user := f.UserMessage("Articles")
	assert.False(t, user.IsBot)
	assert.Equal(t, "Articles", user.Content)
	assert.Empty(t, user.Buttons)
	assert.False(t, user.IsFullWidth)

	bot := f.BotTextMessage("pick one", "A", "B")
	assert.True(t, bot.IsBot)
	assert.Equal(t, []string{"A", "B"}, bot.Buttons)
	assert.Nil(t, f.BotTextMessage("plain").Buttons)

	panel := f.FullWidthMessage(chatbot.SectionProjects)
	assert.True(t, panel.IsBot)
	assert.True(t, panel.IsFullWidth)
	assert.Equal(t, chatbot.SectionProjects, panel.SelectedSection)

	confirm := f.ContactConfirmation("me@test.com", "Hello there")
	assert.Contains(t, confirm.Content, "me@test.com")
	assert.Contains(t, confirm.Content, `"Hello there"`)
	assert.Empty(t, confirm.Buttons)

	failed := f.EmailErrorMessage()
	assert.Contains(t, failed.Content, chatbot.DefaultProfile.ContactEmail)
	assert.Equal(t, []string{chatbot.ButtonReturn}, failed.Buttons)
}

func TestFactoryAboutResponses(t *testing.T) {
	f := testFactory()

	texts := make(map[string]bool)
	for _, topic := range chatbot.AboutTopics {
		msg := f.AboutResponse(topic)
		assert.True(t, msg.IsBot)
		assert.NotEmpty(t, msg.Content)
		texts[msg.Content] = true

		if topic == chatbot.TopicSocial {
			assert.Equal(t, []string{chatbot.ButtonLinkedIn, chatbot.ButtonGitHub, chatbot.ButtonEmail, chatbot.ButtonReturn}, msg.Buttons)
		} else {
			assert.Equal(t, []string{chatbot.ButtonReturn}, msg.Buttons)
		}
	}
	assert.Len(t, texts, len(chatbot.AboutTopics))

	fallback := f.AboutResponse("Hobbies")
	assert.False(t, texts[fallback.Content])
	assert.Equal(t, []string{chatbot.ButtonReturn}, fallback.Buttons)

	social := f.AboutResponse(chatbot.TopicSocial)
	assert.Contains(t, social.Content, chatbot.DefaultProfile.GitHubLabel)
}

func TestFactoryCustomProfile(t *testing.T) {
	p := chatbot.Profile{Name: "Ada", ContactEmail: "ada@example.com", LinkedInURL: "https://l", GitHubURL: "https://g"}
	f := chatbot.NewFactory(chatbot.WithProfile(p))

	assert.True(t, strings.Contains(f.InitialMessage().Content, "Ada"))
	assert.Contains(t, f.EmailErrorMessage().Content, "ada@example.com")

	link, ok := f.Profile().SocialLink(chatbot.ButtonEmail)
	assert.True(t, ok)
	assert.Equal(t, "mailto:ada@example.com", link)
	_, ok = f.Profile().SocialLink(chatbot.ButtonReturn)
	assert.False(t, ok)
}

func TestSections(t *testing.T) {
	s, ok := chatbot.ParseSection(" articles ")
	require.True(t, ok)
	assert.Equal(t, chatbot.SectionArticles, s)
	assert.Equal(t, "/articles", s.Route())
	assert.NotEmpty(t, s.Description())

	_, ok = chatbot.ParseSection("Blog")
	assert.False(t, ok)
	assert.False(t, chatbot.Section("Blog").Valid())

	for _, s := range chatbot.Sections {
		assert.True(t, s.Valid())
		assert.Equal(t, "/"+strings.ToLower(string(s)), s.Route())
	}
}

func TestStateJSON(t *testing.T) {
	f := testFactory()
	s := chatbot.State{
		Messages:           []chatbot.Message{f.InitialMessage(), f.FullWidthMessage(chatbot.SectionArticles)},
		ShowInitialButtons: true,
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"contact_step":null`)
	assert.Contains(t, string(data), `"about_step":null`)
	assert.Contains(t, string(data), `"selected_section":"Articles"`)
	assert.Contains(t, string(data), `"is_full_width":true`)

	s.ContactStep = chatbot.ContactMessage
	data, err = json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"contact_step":"message"`)

	var decoded chatbot.State
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}
