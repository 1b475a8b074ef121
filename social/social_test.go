package social

import (
	"fmt"
	"testing"
)

func TestKeySymmetric(t *testing.T) {
	ids := []string{"mira", "theo", "baby-1-1700000000000", "", "a|b"}
	for _, a := range ids {
		for _, b := range ids {
			if Key(a, b) != Key(b, a) {
				t.Errorf("Key(%q,%q) = %q but Key(%q,%q) = %q", a, b, Key(a, b), b, a, Key(b, a))
			}
		}
	}
	if Key("mira", "theo") == Key("mira", "juno") {
		t.Error("different pairs must not share a key")
	}
}

func TestNextStage(t *testing.T) {
	tests := []struct {
		meet    int
		current Stage
		want    Stage
	}{
		{0, Stranger, Stranger},
		{1, Stranger, Stranger},
		{2, Stranger, Acquaintance},
		{4, Acquaintance, Acquaintance},
		{5, Acquaintance, Friend},
		{10, Friend, Lover},
		{15, Lover, Married},
		{20, Married, Parent},
		{25, Parent, Parent},
		{100, Stranger, Stranger},
		{100, Married, Parent},
		{12, Acquaintance, Acquaintance},
		{3, Friend, Friend},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%s", tt.meet, tt.current), func(t *testing.T) {
			if got := NextStage(tt.meet, tt.current); got != tt.want {
				t.Errorf("NextStage(%d, %s) = %s, want %s", tt.meet, tt.current, got, tt.want)
			}
		})
	}
}

func TestNextStageMonotonic(t *testing.T) {
	for start := Stranger; start <= Parent; start++ {
		stage := start
		for meet := 0; meet <= 40; meet++ {
			next := NextStage(meet, stage)
			if next < stage {
				t.Fatalf("stage regressed from %s to %s at meet %d", stage, next, meet)
			}
			if next > stage+1 {
				t.Fatalf("stage skipped from %s to %s at meet %d", stage, next, meet)
			}
			stage = next
		}
	}
}

func TestNextStageWalksFullLadder(t *testing.T) {
	var r Relationship
	th := DefaultThresholds()
	changes := map[int]Stage{}
	for i := 0; i < 20; i++ {
		prev, next := r.Record("", int64(i), 40, 3, th)
		if next != prev {
			changes[r.MeetCount] = next
		}
	}
	want := map[int]Stage{2: Acquaintance, 5: Friend, 10: Lover, 15: Married, 20: Parent}
	if len(changes) != len(want) {
		t.Fatalf("stage changes %v, want %v", changes, want)
	}
	for meet, s := range want {
		if changes[meet] != s {
			t.Errorf("at meet %d got %s, want %s", meet, changes[meet], s)
		}
	}
}

func TestConversationTypeFor(t *testing.T) {
	tests := []struct {
		meet int
		want ConversationType
	}{
		{0, Greeting},
		{1, SmallTalk},
		{2, SmallTalk},
		{3, Deep},
		{50, Deep},
	}
	for _, tt := range tests {
		if got := ConversationTypeFor(tt.meet); got != tt.want {
			t.Errorf("ConversationTypeFor(%d) = %s, want %s", tt.meet, got, tt.want)
		}
	}
}

func TestRecordTopics(t *testing.T) {
	var r Relationship
	th := DefaultThresholds()
	for _, topic := range []string{"weather", "  ", "bread", "a very long topic about the moon and the stars", "paint"} {
		r.Record(topic, 1, 10, 3, th)
	}
	if r.MeetCount != 5 {
		t.Errorf("MeetCount = %d, want 5", r.MeetCount)
	}
	want := []string{"bread", "a very lo…", "paint"}
	if len(r.LastTopics) != len(want) {
		t.Fatalf("LastTopics = %q, want %q", r.LastTopics, want)
	}
	for i := range want {
		if r.LastTopics[i] != want[i] {
			t.Errorf("LastTopics[%d] = %q, want %q", i, r.LastTopics[i], want[i])
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"héllo wörld", 4, "hél…"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestBookGetOrCreate(t *testing.T) {
	b := NewBook()
	if b.Get("mira", "theo") != nil {
		t.Fatal("strangers should have no record yet")
	}
	r, created := b.GetOrCreate("mira", "theo", 7)
	if !created || r.Stage != Stranger || r.MeetCount != 0 || r.FirstMet != 7 {
		t.Fatalf("unexpected new record %+v created=%v", r, created)
	}
	again, created := b.GetOrCreate("theo", "mira", 9)
	if created || again != r {
		t.Fatal("reversed pair must resolve to the same record")
	}
	if b.Len() != 1 {
		t.Errorf("Len = %d, want 1", b.Len())
	}
}

func TestBookPartner(t *testing.T) {
	b := NewBook()
	friend, _ := b.GetOrCreate("mira", "juno", 0)
	friend.Stage = Friend
	if got := b.Partner("mira"); got != "" {
		t.Errorf("friends are not partners, got %q", got)
	}
	lover, _ := b.GetOrCreate("theo", "mira", 0)
	lover.Stage = Married
	if got := b.Partner("mira"); got != "theo" {
		t.Errorf("Partner(mira) = %q, want theo", got)
	}
	if got := b.Partner("theo"); got != "mira" {
		t.Errorf("Partner(theo) = %q, want mira", got)
	}
}

func TestParseStage(t *testing.T) {
	for s := Stranger; s <= Parent; s++ {
		got, err := ParseStage(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStage(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStage("enemy"); err == nil {
		t.Error("expected error for unknown stage")
	}
}
