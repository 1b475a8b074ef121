package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_SocialBoom(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 600), Agents: 5, ConversationsStarted: 2, ConversationsCompleted: 2})
	}

	bms := bd.Check(WindowStats{WindowEndTick: 3000, Agents: 5, ConversationsStarted: 6, ConversationsCompleted: 6})
	if !hasBookmark(bms, BookmarkSocialBoom) {
		t.Error("expected social_boom bookmark")
	}
}

func TestBookmarkDetector_NoBoomWithoutHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bms := bd.Check(WindowStats{Agents: 5, ConversationsStarted: 9, ConversationsCompleted: 9})
	if hasBookmark(bms, BookmarkSocialBoom) {
		t.Error("social_boom needs history")
	}
}

func TestBookmarkDetector_QuietSpellFiresOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)

	var fired int
	for i := 0; i < 6; i++ {
		if hasBookmark(bd.Check(WindowStats{Agents: 3}), BookmarkQuietSpell) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("quiet_spell fired %d times, want 1", fired)
	}

	// A conversation ends the spell; a new spell can fire again
	bd.Check(WindowStats{Agents: 3, ConversationsStarted: 1})
	fired = 0
	for i := 0; i < quietWindows; i++ {
		if hasBookmark(bd.Check(WindowStats{Agents: 3}), BookmarkQuietSpell) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("second quiet_spell fired %d times, want 1", fired)
	}
}

func TestBookmarkDetector_BabyBoomAndGatewayTrouble(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bms := bd.Check(WindowStats{Agents: 6, ConversationsStarted: 4, Births: 2, ConversationsFailed: 4, ConversationsCompleted: 1})
	if !hasBookmark(bms, BookmarkBabyBoom) {
		t.Error("expected baby_boom bookmark")
	}
	if !hasBookmark(bms, BookmarkGatewayTrouble) {
		t.Error("expected gateway_trouble bookmark")
	}
}
