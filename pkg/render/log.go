package render

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
)

// LogSurface writes cards to the process log. It is the surface of last
// resort when no Telegram token is configured; handles still behave so
// the tracker's edit path works unchanged.
type LogSurface struct {
	next atomic.Int64
}

func NewLogSurface() *LogSurface {
	return &LogSurface{}
}

func (s *LogSurface) Post(_ context.Context, text string) (string, error) {
	id := s.next.Add(1)
	log.Printf("[render] post #%d:\n%s", id, text)
	return fmt.Sprintf("log:%d", id), nil
}

func (s *LogSurface) Edit(_ context.Context, handle, text string) error {
	log.Printf("[render] edit %s:\n%s", handle, text)
	return nil
}
