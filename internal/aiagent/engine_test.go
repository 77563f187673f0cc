package aiagent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisaanchat/internal/common"
	"kisaanchat/internal/dbmongo"
)

func TestDraft_KeywordTopics(t *testing.T) {
	farmer := &dbmongo.User{Name: "Ramesh", Location: "Nashik"}

	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{"weather uses location", "will it rain tomorrow?", "Nashik"},
		{"pest advice", "aphids are eating my cotton", "Neem oil"},
		{"seed advice", "which variety should I sow", "certified seed"},
		{"fertilizer advice", "how much urea for wheat", "soil test"},
		{"disease advice", "leaves turning yellow with spots", "photo"},
		{"market advice", "what is the mandi rate for onion", "eNAM"},
		{"irrigation advice", "should I use drip irrigation", "PMKSY"},
		{"harvest advice", "when to harvest and how to store grain", "moisture"},
		{"scheme advice", "am I eligible for any subsidy", "PM-KISAN"},
		{"default greets by name", "namaste", "Ramesh"},
	}

	engine := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &dbmongo.Message{
				MessageType: common.MessageText,
				Content:     tt.content,
			}
			got, err := engine.Draft(context.Background(), msg, farmer)
			require.NoError(t, err)
			assert.Contains(t, got, tt.contains)
		})
	}
}

func TestDraft_KeywordNeedsWholeWord(t *testing.T) {
	engine := NewEngine()
	farmer := &dbmongo.User{Name: "Ramesh", Location: "Nashik"}

	// "grain" must not trip the "rain" keyword.
	got, err := engine.Draft(context.Background(), &dbmongo.Message{
		MessageType: common.MessageText,
		Content:     "price of grain at the mandi",
	}, farmer)
	require.NoError(t, err)
	assert.NotContains(t, got, "Weather outlook")
	assert.Contains(t, got, "eNAM")
}

func TestDraft_MediaMessages(t *testing.T) {
	engine := NewEngine()
	farmer := &dbmongo.User{Name: "Sita"}

	got, err := engine.Draft(context.Background(), &dbmongo.Message{
		MessageType: common.MessageImage,
		ImageURL:    "http://media/1",
	}, farmer)
	require.NoError(t, err)
	assert.Contains(t, got, "photo")

	got, err = engine.Draft(context.Background(), &dbmongo.Message{
		MessageType:   common.MessageVoice,
		VoiceURL:      "http://media/2",
		VoiceDuration: 12,
	}, farmer)
	require.NoError(t, err)
	assert.Contains(t, got, "12 second")

	got, err = engine.Draft(context.Background(), &dbmongo.Message{
		MessageType:   common.MessageVideo,
		VideoURL:      "http://media/3",
		VideoDuration: 45,
	}, farmer)
	require.NoError(t, err)
	assert.Contains(t, got, "45 second")
}

func TestDraft_WeatherWithoutLocation(t *testing.T) {
	engine := NewEngine()

	got, err := engine.Draft(context.Background(), &dbmongo.Message{
		MessageType: common.MessageText,
		Content:     "monsoon forecast please",
	}, &dbmongo.User{Name: "Ramesh"})
	require.NoError(t, err)
	assert.Contains(t, got, "your area")
}

func TestDraft_CancelledContext(t *testing.T) {
	engine := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Draft(ctx, &dbmongo.Message{
		MessageType: common.MessageText,
		Content:     "hello",
	}, &dbmongo.User{})
	assert.Error(t, err)
}
