package catalog

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSource struct {
	teams   map[string][]string
	players map[string][]string
	err     error
	calls   int
}

func (f *fakeSource) TeamNames(_ context.Context, league string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.teams[league], nil
}

func (f *fakeSource) PlayerNames(_ context.Context, league string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.players[league], nil
}

func TestSeededBeforeRefresh(t *testing.T) {
	c := New(nil, time.Hour)
	if got := c.Teams("NFL"); len(got) != 32 {
		t.Fatalf("seeded NFL teams = %d, want 32", len(got))
	}
	if got := c.Teams("UFC"); got != nil {
		t.Fatalf("UFC should have no roster, got %v", got)
	}
	if err := c.Refresh(context.Background(), true); err != nil {
		t.Fatalf("nil-source refresh: %v", err)
	}
}

func TestRefreshSwapsRosters(t *testing.T) {
	src := &fakeSource{
		teams:   map[string][]string{"NFL": {"Dallas Cowboys"}},
		players: map[string][]string{"NFL": {"Drake Maye"}},
	}
	c := New(src, time.Hour)
	if err := c.Refresh(context.Background(), true); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := c.Teams("NFL"); len(got) != 1 || got[0] != "Dallas Cowboys" {
		t.Fatalf("teams after refresh = %v", got)
	}
	if got := c.Players("NFL"); len(got) != 1 || got[0] != "Drake Maye" {
		t.Fatalf("players after refresh = %v", got)
	}
}

func TestRefreshFailureKeepsSeed(t *testing.T) {
	src := &fakeSource{err: errors.New("feed down")}
	c := New(src, time.Hour)
	if err := c.Refresh(context.Background(), true); err == nil {
		t.Fatal("expected error from failing source")
	}
	if got := c.Teams("NFL"); len(got) != 32 {
		t.Fatalf("seed lost on failed refresh: %d teams", len(got))
	}
}

func TestRefreshRespectsMaxAge(t *testing.T) {
	src := &fakeSource{teams: map[string][]string{}}
	c := New(src, time.Hour)
	if err := c.Refresh(context.Background(), true); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	first := src.calls
	if err := c.Refresh(context.Background(), false); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if src.calls != first {
		t.Fatalf("non-forced refresh hit the source while fresh")
	}
}
