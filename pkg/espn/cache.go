package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ScoreboardTTL keeps cached scoreboards short-lived; both polling
// loops within one window share a snapshot instead of refetching.
const ScoreboardTTL = 45 * time.Second

// SnapshotCache is a best-effort scoreboard cache on Redis. Every
// failure path degrades to a direct API fetch, never to an error.
type SnapshotCache struct {
	client *redis.Client
}

func NewSnapshotCache(client *redis.Client) *SnapshotCache {
	return &SnapshotCache{client: client}
}

func scoreboardKey(sportPath string) string {
	return fmt.Sprintf("scoreboard:%s", sportPath)
}

func (s *SnapshotCache) GetScoreboard(ctx context.Context, sportPath string) (*Scoreboard, bool) {
	data, err := s.client.Get(ctx, scoreboardKey(sportPath)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[espn] cache read %s: %v", sportPath, err)
		}
		return nil, false
	}
	var sb Scoreboard
	if err := json.Unmarshal([]byte(data), &sb); err != nil {
		log.Printf("[espn] cache decode %s: %v", sportPath, err)
		return nil, false
	}
	return &sb, true
}

func (s *SnapshotCache) PutScoreboard(ctx context.Context, sportPath string, sb *Scoreboard) {
	data, err := json.Marshal(sb)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, scoreboardKey(sportPath), data, ScoreboardTTL).Err(); err != nil {
		log.Printf("[espn] cache write %s: %v", sportPath, err)
	}
}
