package gateway

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// extractJSON strips markdown fences and chatter around the first JSON value.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```JSON")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	if end := strings.LastIndexByte(s, closer); end > start {
		return s[start : end+1]
	}
	// Truncated reply: leave the tail for jsonrepair to close
	return s[start:]
}

// decodeLenient decodes a model reply into v, repairing it first if needed.
func decodeLenient(raw string, v any) error {
	body := extractJSON(raw)
	if body == "" {
		return ErrEmptyReply
	}
	if err := json.Unmarshal([]byte(body), v); err == nil {
		return nil
	}
	repaired, err := jsonrepair.JSONRepair(body)
	if err != nil {
		return fmt.Errorf("repairing reply: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("decoding repaired reply: %w", err)
	}
	slog.Debug("gateway reply repaired", "original_bytes", len(body), "repaired_bytes", len(repaired))
	return nil
}

// ParseConversation turns a model reply into a Conversation. Lines without text
// are dropped, a missing speaker falls back to alternating a and b, and a missing
// topic becomes "".
func ParseConversation(raw, a, b string) (Conversation, error) {
	var conv Conversation
	if err := decodeLenient(raw, &conv); err != nil {
		// Some models answer with a bare array of lines
		var lines []Line
		if decodeLenient(raw, &lines) != nil {
			return Conversation{}, err
		}
		conv.Messages = lines
	}

	cleaned := conv.Messages[:0]
	for _, m := range conv.Messages {
		m.Text = strings.TrimSpace(m.Text)
		if m.Text == "" {
			continue
		}
		m.Speaker = strings.TrimSpace(m.Speaker)
		if m.Speaker == "" {
			m.Speaker = a
			if len(cleaned)%2 == 1 {
				m.Speaker = b
			}
		}
		cleaned = append(cleaned, m)
	}
	conv.Messages = cleaned
	conv.Topic = strings.TrimSpace(conv.Topic)
	return conv, nil
}

// ParseDecree turns a model reply into decree reactions. Both a bare array and
// an object with a "reactions" array are accepted.
func ParseDecree(raw string) ([]DecreeReaction, error) {
	var list []DecreeReaction
	if err := decodeLenient(raw, &list); err != nil {
		var wrapped struct {
			Reactions []DecreeReaction `json:"reactions"`
		}
		if err2 := decodeLenient(raw, &wrapped); err2 != nil {
			return nil, err
		}
		list = wrapped.Reactions
	}
	out := list[:0]
	for _, r := range list {
		r.AgentName = strings.TrimSpace(r.AgentName)
		r.Reaction = strings.TrimSpace(r.Reaction)
		if r.AgentName == "" || r.Reaction == "" {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// ParseReaction keeps the first non-empty line of a plain-text reply, unquoted.
func ParseReaction(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "\"'`")
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
