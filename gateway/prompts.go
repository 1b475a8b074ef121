package gateway

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/hamlet/social"
)

func conversationFraming(t social.ConversationType) string {
	switch t {
	case social.Greeting:
		return "They are meeting for the very first time. Keep it to a polite, slightly awkward hello."
	case social.SmallTalk:
		return "They have met once or twice before. Light small talk about their day or the village."
	case social.Deep:
		return "They know each other well. Let them share something personal, a worry, a hope or a memory."
	}
	return ""
}

func stageFraming(s social.Stage) string {
	switch s {
	case social.Stranger:
		return "They are strangers."
	case social.Acquaintance:
		return "They are acquaintances."
	case social.Friend:
		return "They are friends."
	case social.Lover:
		return "They are in love."
	case social.Married:
		return "They are married."
	case social.Parent:
		return "They are married and raising a child together."
	}
	return ""
}

// ConversationPrompt builds the prompt for a two-person exchange.
func ConversationPrompt(req ConversationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short conversation between two villagers in a cozy pixel-art village.\n\n")
	fmt.Fprintf(&b, "%s %s: %s\n", req.A.Emoji, req.A.Name, req.A.Personality)
	fmt.Fprintf(&b, "%s %s: %s\n\n", req.B.Emoji, req.B.Name, req.B.Personality)
	fmt.Fprintf(&b, "%s %s They have met %d times.\n", conversationFraming(req.Type), stageFraming(req.Stage), req.MeetCount)
	if req.BuildingID != "" {
		fmt.Fprintf(&b, "They bumped into each other at %s.\n", req.BuildingID)
	}
	if len(req.Topics) > 0 {
		fmt.Fprintf(&b, "Recently they talked about: %s.\n", strings.Join(req.Topics, "; "))
	}
	fmt.Fprintf(&b, "\nWrite exactly %d lines, alternating speakers, starting with %s. Each line under 80 characters.\n",
		LinesFor(req.Type), req.A.Name)
	b.WriteString(`Reply with JSON only: {"messages":[{"speaker":"<name>","text":"<line>"}],"topic":"<three word summary>"}`)
	return b.String()
}

// ReactionPrompt builds the prompt for a one-line reaction to an object.
func ReactionPrompt(req ReactionRequest) string {
	return fmt.Sprintf(
		"%s %s (%s) just found a %s %s lying on the ground in the village. "+
			"Write their one-line spoken reaction, under 60 characters, in character. Reply with the line only.",
		req.Agent.Emoji, req.Agent.Name, req.Agent.Personality, req.ObjectEmoji, req.ObjectName)
}

// DecreePrompt builds the prompt for every villager's reply to a decree.
func DecreePrompt(message string, agents []Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A booming voice from the sky decrees: %q\n\nThe villagers:\n", message)
	for _, a := range agents {
		fmt.Fprintf(&b, "- %s %s: %s\n", a.Emoji, a.Name, a.Personality)
	}
	b.WriteString("\nGive each villager a one-line reaction under 60 characters.\n")
	b.WriteString(`Reply with JSON only: [{"agentName":"<name>","emoji":"<one emoji>","reaction":"<line>"}]`)
	return b.String()
}
