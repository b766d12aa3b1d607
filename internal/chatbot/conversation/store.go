// internal/chatbot/conversation/store.go

// Package conversation remembers the language of each conversation.
package conversation

import (
	"sync"
	"sync/atomic"

	"gear9-chatbot/internal/chatbot/language"
)

// Resolution modes reported to Observer.
const (
	ModeExplicit = "explicit"
	ModeSticky   = "sticky"
	ModeDetected = "detected"
)

// Observer is notified of every resolution and of the number of tracked
// conversations. The metrics package provides the production observer.
type Observer interface {
	Resolved(lang language.Language, mode string)
	Tracked(count int64)
}

type entry struct {
	lang   language.Language
	forced bool
}

// Store maps conversation ids to their language. A language chosen
// explicitly is sticky: auto-detection never replaces it, only another
// explicit choice or Forget does. Detected languages are overwritten on
// every turn. The zero value is not usable; call NewStore.
type Store struct {
	detector language.Detector
	observer Observer
	entries  sync.Map // string -> entry
	count    atomic.Int64
}

func NewStore(detector language.Detector, observer Observer) *Store {
	return &Store{detector: detector, observer: observer}
}

// Resolve returns the language to answer message in. explicit is honoured
// when it parses as en/fr. An empty conversationID resolves without
// remembering anything.
func (s *Store) Resolve(conversationID, message, explicit string) language.Language {
	if lang, ok := language.Parse(explicit); ok {
		if conversationID != "" {
			s.put(conversationID, entry{lang: lang, forced: true})
		}
		s.notify(lang, ModeExplicit)
		return lang
	}

	detected := s.detector.Detect(message)
	if conversationID == "" {
		s.notify(detected, ModeDetected)
		return detected
	}

	next := entry{lang: detected}
	for {
		prev, loaded := s.entries.LoadOrStore(conversationID, next)
		if !loaded {
			s.track(1)
			s.notify(detected, ModeDetected)
			return detected
		}
		cur := prev.(entry)
		if cur.forced {
			s.notify(cur.lang, ModeSticky)
			return cur.lang
		}
		if cur == next || s.entries.CompareAndSwap(conversationID, cur, next) {
			s.notify(detected, ModeDetected)
			return detected
		}
		// lost a race with a concurrent writer, re-read
	}
}

// Language returns the remembered language of conversationID.
func (s *Store) Language(conversationID string) (language.Language, bool) {
	v, ok := s.entries.Load(conversationID)
	if !ok {
		return "", false
	}
	return v.(entry).lang, true
}

// Forget drops everything remembered about conversationID.
func (s *Store) Forget(conversationID string) {
	if _, loaded := s.entries.LoadAndDelete(conversationID); loaded {
		s.track(-1)
	}
}

// Len is the number of tracked conversations.
func (s *Store) Len() int64 {
	return s.count.Load()
}

func (s *Store) put(id string, e entry) {
	if _, loaded := s.entries.Swap(id, e); !loaded {
		s.track(1)
	}
}

func (s *Store) track(delta int64) {
	n := s.count.Add(delta)
	if s.observer != nil {
		s.observer.Tracked(n)
	}
}

func (s *Store) notify(lang language.Language, mode string) {
	if s.observer != nil {
		s.observer.Resolved(lang, mode)
	}
}
