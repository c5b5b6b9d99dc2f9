package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleAfter is how long a chat may stay silent before its limiter is
// dropped. A limiter idle for a full minute has refilled, so dropping it
// loses nothing.
const idleAfter = 2 * time.Minute

type chatLimit struct {
	limiter *rate.Limiter
	seen    time.Time
}

// ChatLimiter bounds how many messages per minute each chat may send. A nil
// *ChatLimiter allows everything.
type ChatLimiter struct {
	mu        sync.Mutex
	perMin    int
	now       func() time.Time
	lastSweep time.Time
	chats     map[int64]*chatLimit
}

// NewChatLimiter returns nil when perMinute is not positive.
func NewChatLimiter(perMinute int) *ChatLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &ChatLimiter{
		perMin: perMinute,
		now:    time.Now,
		chats:  make(map[int64]*chatLimit),
	}
}

func (l *ChatLimiter) Allow(chatID int64) bool {
	if l == nil {
		return true
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= idleAfter {
		l.sweep(now)
	}
	c, ok := l.chats[chatID]
	if !ok {
		c = &chatLimit{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin)}
		l.chats[chatID] = c
	}
	c.seen = now
	return c.limiter.AllowN(now, 1)
}

func (l *ChatLimiter) sweep(now time.Time) {
	for id, c := range l.chats {
		if now.Sub(c.seen) >= idleAfter {
			delete(l.chats, id)
		}
	}
	l.lastSweep = now
}
