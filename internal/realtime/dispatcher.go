package realtime

import (
	"sync"

	"go-talent-marketplace/internal/domain"
)

// sessionBuffer bounds how many undelivered pushes a slow client can hold
// before further pushes are dropped. Dropped pushes are recovered by the
// client through the unread/conversation queries on reconnect.
const sessionBuffer = 16

// Session is the live delivery handle for one connected user. The outbound
// channel is closed when the session is unsubscribed or superseded.
type Session struct {
	UserID int64

	out  chan *domain.Message
	once sync.Once
}

// Outbound returns the channel the transport drains to push messages to the
// connected client.
func (s *Session) Outbound() <-chan *domain.Message {
	return s.out
}

func (s *Session) close() {
	s.once.Do(func() {
		close(s.out)
	})
}

// Dispatcher is the process-wide registry of live sessions keyed by user id.
// It provides best-effort push with no guarantees regarding delivery,
// ordering, durability, or retries; the durable message store is the source
// of truth. Dispatcher is safe for concurrent use by multiple goroutines.
type Dispatcher struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{sessions: make(map[int64]*Session)}
}

// Subscribe registers a live session for the user. A second subscription for
// the same user supersedes the first: the old session's outbound channel is
// closed so its transport loop terminates.
func (d *Dispatcher) Subscribe(userID int64) *Session {
	sess := &Session{
		UserID: userID,
		out:    make(chan *domain.Message, sessionBuffer),
	}

	d.mu.Lock()
	if old, ok := d.sessions[userID]; ok {
		old.close()
	}
	d.sessions[userID] = sess
	d.mu.Unlock()

	return sess
}

// Unsubscribe removes the session and closes its outbound channel. A stale
// handle (already superseded by a newer Subscribe) only closes itself and
// leaves the current session registered.
func (d *Dispatcher) Unsubscribe(sess *Session) {
	d.mu.Lock()
	if current, ok := d.sessions[sess.UserID]; ok && current == sess {
		delete(d.sessions, sess.UserID)
	}
	sess.close()
	d.mu.Unlock()
}

// Publish pushes a stored message to the receiver's session, if one exists.
// It never blocks: no subscriber is a fast no-op, and a full session buffer
// drops the push. Sends run under the read lock while close only ever runs
// under the write lock, so a send can never hit a closed channel.
func (d *Dispatcher) Publish(receiverID int64, msg *domain.Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	sess, ok := d.sessions[receiverID]
	if !ok {
		return
	}
	select {
	case sess.out <- msg:
	default:
	}
}
