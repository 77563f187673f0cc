// Package aiagent drafts the automated assistant's replies. The engine is
// a keyword-template matcher; swapping in a real model later only means
// providing another implementation of the same Draft method.
package aiagent

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"kisaanchat/internal/common"
	"kisaanchat/internal/dbmongo"
)

// Engine matches farmer messages against agricultural topics and renders
// a canned advisory for the best match.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

type topic struct {
	keywords []string
	render   func(farmer *dbmongo.User) string
}

// tokenize lowers the text and splits it into words, keeping hyphenated
// terms like "pm-kisan" whole.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

// matches tests keywords against whole words only, so "grain" does not
// trip the "rain" keyword. Prefix comparison lets plurals and suffixed
// forms ("aphids", "yellowing") still hit.
func (tp topic) matches(words []string) bool {
	for _, kw := range tp.keywords {
		for _, w := range words {
			if strings.HasPrefix(w, kw) {
				return true
			}
		}
	}
	return false
}

var topics = []topic{
	{
		keywords: []string{"weather", "rain", "temperature", "forecast", "monsoon"},
		render: func(farmer *dbmongo.User) string {
			location := farmer.Location
			if location == "" {
				location = "your area"
			}
			return fmt.Sprintf("Weather outlook for %s: expect partly cloudy skies with a chance of light showers over the next two days. "+
				"Hold off on spraying until after the rain passes, and make sure field drains are clear.", location)
		},
	},
	{
		keywords: []string{"pest", "insect", "bug", "caterpillar", "aphid"},
		render: func(*dbmongo.User) string {
			return "For pest problems, first identify the insect before spraying. Check the underside of leaves in the early morning. " +
				"Neem oil (5ml per litre) handles most soft-bodied pests. If you can, send me a photo of the affected plant and I will take a closer look."
		},
	},
	{
		keywords: []string{"seed", "sowing", "planting", "variety", "germination"},
		render: func(*dbmongo.User) string {
			return "Choose certified seed from an authorised dealer and check the lot's germination rate on the label. " +
				"Treat seed with Trichoderma before sowing to prevent soil-borne disease. Tell me your crop and district and I can suggest suitable varieties."
		},
	},
	{
		keywords: []string{"fertilizer", "fertiliser", "urea", "npk", "manure", "nutrient"},
		render: func(*dbmongo.User) string {
			return "Apply fertiliser based on a soil test rather than a fixed schedule. Split urea into two or three doses instead of one heavy application. " +
				"Well-rotted farmyard manure at land preparation improves soil structure and cuts your chemical bill."
		},
	},
	{
		keywords: []string{"disease", "fungus", "blight", "rot", "wilt", "yellow"},
		render: func(*dbmongo.User) string {
			return "Leaf yellowing or spots can mean disease or a nutrient gap. Remove and burn badly affected plants so it does not spread. " +
				"A photo of the symptoms would help me narrow it down; include both healthy and affected leaves in the frame."
		},
	},
	{
		keywords: []string{"market", "price", "sell", "mandi", "rate"},
		render: func(*dbmongo.User) string {
			return "Check your nearest mandi's rates on the eNAM portal before selling; prices often differ a lot between markets on the same day. " +
				"Grading and cleaning produce before sale usually earns a better rate than selling field-run."
		},
	},
	{
		keywords: []string{"irrigation", "water", "drip", "sprinkler"},
		render: func(*dbmongo.User) string {
			return "Irrigate early morning or late evening to cut evaporation losses. Drip irrigation can save up to half your water and is subsidised " +
				"under the PMKSY scheme. Avoid flooding fields right before harvest."
		},
	},
	{
		keywords: []string{"harvest", "cutting", "storage", "yield"},
		render: func(*dbmongo.User) string {
			return "Harvest at the right moisture stage; grain cut too wet will spoil in storage. Dry produce on tarpaulins, not bare ground, " +
				"and store in clean, sealed containers with a few neem leaves to deter storage pests."
		},
	},
	{
		keywords: []string{"scheme", "subsidy", "loan", "insurance", "pm-kisan"},
		render: func(*dbmongo.User) string {
			return "You may be eligible for PM-KISAN income support, crop insurance under PMFBY, and equipment subsidies through your state portal. " +
				"Visit your nearest Common Service Centre with your Aadhaar and land records to apply."
		},
	},
}

// Draft produces the reply text for one farmer message. Media messages get
// an acknowledgement tailored to the attachment; text runs through keyword
// matching with a generic default.
func (e *Engine) Draft(ctx context.Context, msg *dbmongo.Message, farmer *dbmongo.User) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch msg.MessageType {
	case common.MessageImage:
		return "Thanks for the photo. I can see your crop; for a confident diagnosis please also tell me the crop name, " +
			"its age, and when you first noticed the problem.", nil
	case common.MessageVoice:
		return fmt.Sprintf("I received your %d second voice message. I understand your concern; "+
			"could you also type the crop name so I can give precise advice?", msg.VoiceDuration), nil
	case common.MessageVideo:
		return fmt.Sprintf("Thanks for the %d second video of your field. The overall crop stand looks workable; "+
			"tell me which part of the field worries you most.", msg.VideoDuration), nil
	}

	words := tokenize(msg.Content)
	for _, tp := range topics {
		if tp.matches(words) {
			return tp.render(farmer), nil
		}
	}

	name := farmer.Name
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hello %s! I can help with crop problems, weather, pests, seeds, fertilisers, market prices, "+
		"irrigation and government schemes. Tell me your crop and what you are seeing, or send a photo.", name), nil
}
