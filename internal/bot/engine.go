package bot

import (
	"context"
	"hash/fnv"
	"log"
	"sync"
	"time"

	"github.com/suPer8Hu/supportbot/internal/session"
)

// Engine processes one message end to end: classify, extract, respond, and
// append the user/bot turn pair to the session store. Messages for different
// users may be processed concurrently; a striped lock keyed by user id keeps
// each user's two turns adjacent in history. Striping bounds lock memory no
// matter how many user ids the process ever sees; two users sharing a stripe
// serialize against each other, which is harmless.
type Engine struct {
	store session.Store
	resp  *Responder

	locks [64]sync.Mutex
}

func NewEngine(store session.Store, resp *Responder) *Engine {
	return &Engine{store: store, resp: resp}
}

func (e *Engine) userLock(userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &e.locks[h.Sum32()%uint32(len(e.locks))]
}

// ProcessQuery always returns a reply and an intent tag; failures surface as
// in-band reply text, never as a fault. Empty-after-trim input falls through
// to the default intent (the caller is expected to reject empty input first).
func (e *Engine) ProcessQuery(ctx context.Context, userID, text string) (string, Intent) {
	l := e.userLock(userID)
	l.Lock()
	defer l.Unlock()

	if err := e.store.Record(ctx, userID, session.Turn{
		Role:      session.RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}); err != nil {
		log.Printf("[ProcessQuery] record user turn user=%s err=%v", userID, err)
	}

	reply, intent := e.resp.Respond(ctx, text)

	if err := e.store.Record(ctx, userID, session.Turn{
		Role:      session.RoleBot,
		Text:      reply,
		Intent:    string(intent),
		Timestamp: time.Now(),
	}); err != nil {
		log.Printf("[ProcessQuery] record bot turn user=%s err=%v", userID, err)
	}

	return reply, intent
}
