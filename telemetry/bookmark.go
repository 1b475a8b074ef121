package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSocialBoom     BookmarkType = "social_boom"
	BookmarkQuietSpell     BookmarkType = "quiet_spell"
	BookmarkBabyBoom       BookmarkType = "baby_boom"
	BookmarkGatewayTrouble BookmarkType = "gateway_trouble"
)

// Bookmark marks a window worth looking at later.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// quietWindows is how many silent windows in a row make a quiet spell.
const quietWindows = 3

// BookmarkDetector flags unusual windows against a rolling history.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	quietCount int
	quietFired bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkSocialBoom(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkQuietSpell(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if stats.Births >= 2 {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkBabyBoom,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d babies born in one window", stats.Births),
		})
	}
	if stats.ConversationsFailed >= 3 && stats.ConversationsFailed > stats.ConversationsCompleted {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkGatewayTrouble,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d of %d conversations failed", stats.ConversationsFailed, stats.ConversationsFailed+stats.ConversationsCompleted),
		})
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkSocialBoom fires when completed conversations exceed twice the rolling average.
func (bd *BookmarkDetector) checkSocialBoom(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.ConversationsCompleted
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	current := float64(stats.ConversationsCompleted)
	if current > avg*2.0 && stats.ConversationsCompleted >= 3 {
		return &Bookmark{
			Type:        BookmarkSocialBoom,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d conversations is %.1fx average (%.2f)", stats.ConversationsCompleted, current/avg, avg),
		}
	}
	return nil
}

// checkQuietSpell fires once per spell of windows with nobody starting a conversation.
func (bd *BookmarkDetector) checkQuietSpell(stats WindowStats) *Bookmark {
	if stats.Agents < 2 || stats.ConversationsStarted > 0 {
		bd.quietCount = 0
		bd.quietFired = false
		return nil
	}
	bd.quietCount++
	if bd.quietCount < quietWindows || bd.quietFired {
		return nil
	}
	bd.quietFired = true
	return &Bookmark{
		Type:        BookmarkQuietSpell,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("no new conversations for %d windows", bd.quietCount),
	}
}
