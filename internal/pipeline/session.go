package pipeline

import (
	"context"

	"github.com/tyler180/floorball-appearances/internal/innebandy"
)

// Session is the fetcher a run navigates with. Roster pages may need a
// different wait than player pages, so the roster fetcher is separate.
// Close releases whatever backs the session.
type Session interface {
	innebandy.PageFetcher
	RosterFetcher() innebandy.PageFetcher
	Close() error
}

// OpenFunc starts a session. It is only called once a run needs the network.
type OpenFunc func(ctx context.Context) (Session, error)

// StaticSession adapts a stateless fetcher, such as innebandy.HTTPFetcher,
// to Session.
func StaticSession(f innebandy.PageFetcher) Session {
	return staticSession{f}
}

type staticSession struct{ innebandy.PageFetcher }

func (s staticSession) RosterFetcher() innebandy.PageFetcher { return s.PageFetcher }
func (staticSession) Close() error                           { return nil }

// lazySession opens on first use and closes only if it was opened.
type lazySession struct {
	open OpenFunc
	s    Session
}

func (l *lazySession) get(ctx context.Context) (Session, error) {
	if l.s != nil {
		return l.s, nil
	}
	s, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	l.s = s
	return s, nil
}

func (l *lazySession) Close() error {
	if l.s == nil {
		return nil
	}
	err := l.s.Close()
	l.s = nil
	return err
}
