package repl

import (
	"sync"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authform"
	"connectorauth/internal/config"
)

// session is the commands.Session of a REPL.
type session struct {
	mu       sync.RWMutex
	editor   *authform.Editor
	current  authctx.EntityContext
	states   *config.StateStorage
	onSwitch func(authctx.EntityContext)
}

func (s *session) Editor() *authform.Editor { return s.editor }

func (s *session) States() *config.StateStorage { return s.states }

func (s *session) Context() authctx.EntityContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *session) SetContext(ctx authctx.EntityContext) {
	s.editor.Mount(ctx)

	s.mu.Lock()
	s.current = ctx
	s.mu.Unlock()

	if s.onSwitch != nil {
		s.onSwitch(ctx)
	}
}
