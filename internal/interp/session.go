package interp

import (
	"cppmirror/internal/decl"
	"cppmirror/internal/diag"
)

// Session is the live compiler model: the declaration table plus the query
// services the reflection layer needs. Any query that may materialize
// deferred declarations or instantiate a template must run inside a
// Transaction, and all of it under the process-wide lock.
type Session struct {
	Table    *decl.Table
	Reporter diag.Reporter

	txDepth       int
	journal       map[decl.ContextID]int // context decl-list lengths at outermost begin
	implicitFlips []decl.ContextID       // contexts whose ImplicitDone flipped this transaction
	declMark      int
	inheriting    map[decl.DeclID]decl.DeclID // ctor-using shadow -> inheriting ctor
	instCache     map[instKey]decl.DeclID

	// DeferredLoads counts contexts materialized on demand; tests use it to
	// verify adoption really went through a transaction.
	DeferredLoads int
}

// NewSession creates an empty session. A nil reporter defaults to NopReporter.
func NewSession(r diag.Reporter) *Session {
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Session{
		Table:      decl.NewTable(decl.Hints{}),
		Reporter:   r,
		inheriting: make(map[decl.DeclID]decl.DeclID),
		instCache:  make(map[instKey]decl.DeclID),
	}
}

// Tx is one scoped compilation transaction. Nested transactions collapse
// to the outermost; only the outermost commit or rollback has any effect.
type Tx struct {
	s         *Session
	outermost bool
	done      bool
}

// Transaction acquires the global lock and opens a (possibly nested)
// transaction. Callers must finish it with Commit or Rollback on every
// exit path.
func (s *Session) Transaction() *Tx {
	Global().Acquire()
	s.txDepth++
	tx := &Tx{s: s, outermost: s.txDepth == 1}
	if tx.outermost {
		s.declMark = s.Table.Decls.Watermark()
		s.journal = make(map[decl.ContextID]int)
		s.implicitFlips = nil
	}
	return tx
}

// InTransaction reports whether a transaction is currently open.
func (s *Session) InTransaction() bool { return s.txDepth > 0 }

// Commit finishes the transaction keeping all work done inside it.
func (t *Tx) Commit() {
	if t.done {
		return
	}
	t.done = true
	t.s.txDepth--
	if t.outermost {
		t.s.journal = nil
		t.s.implicitFlips = nil
	}
	Global().Release()
}

// Rollback finishes the transaction discarding declarations created since
// the outermost begin. Inner rollbacks collapse into the outermost commit
// decision, mirroring the nesting contract.
func (t *Tx) Rollback() {
	if t.done {
		return
	}
	t.done = true
	t.s.txDepth--
	if t.outermost {
		for ctxID, n := range t.s.journal {
			if ctx := t.s.Table.Contexts.Get(ctxID); ctx != nil && n <= len(ctx.Decls) {
				ctx.Decls = ctx.Decls[:n]
			}
		}
		t.s.Table.Decls.Truncate(t.s.declMark)
		t.s.journal = nil
		// The caches memoize session-owned declarations; any allocated past
		// the watermark is gone now and its arena index will be reused, so
		// the stale entries must go with it.
		for shadow, id := range t.s.inheriting {
			if int(id) >= t.s.declMark {
				delete(t.s.inheriting, shadow)
			}
		}
		for key, id := range t.s.instCache {
			if int(id) >= t.s.declMark {
				delete(t.s.instCache, key)
			}
		}
		for _, ctxID := range t.s.implicitFlips {
			if ctx := t.s.Table.Contexts.Get(ctxID); ctx != nil {
				ctx.ImplicitDone = false
			}
		}
		t.s.implicitFlips = nil
	}
	Global().Release()
}

// requireTx guards the query services that may trigger compiler work.
func (s *Session) requireTx() {
	if s.txDepth == 0 {
		panic("interp: compiler query outside a transaction")
	}
}

// noteImplicit records an ImplicitDone flip so rollback can undo it.
func (s *Session) noteImplicit(ctx decl.ContextID) {
	s.implicitFlips = append(s.implicitFlips, ctx)
}

// noteGrowth records a context's pre-growth length for rollback.
func (s *Session) noteGrowth(ctx decl.ContextID) {
	if s.journal == nil {
		return
	}
	if _, ok := s.journal[ctx]; ok {
		return
	}
	if c := s.Table.Contexts.Get(ctx); c != nil {
		s.journal[ctx] = len(c.Decls)
	}
}
