package lawsite

import "context"

// SessionUser is the identity carried by an authenticated session.
type SessionUser struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// Session is a resolved, currently valid sign-in.
type Session struct {
	User SessionUser `json:"user"`
}

// IsAdmin reports whether the session belongs to an admin.
func (s *Session) IsAdmin() bool {
	return s != nil && s.User.Role == RoleAdmin
}

type sessionCtxKey struct{}

type sessionState struct {
	session    *Session
	invalidate func() error
}

// WithSession returns a context carrying the resolved session (nil when the
// caller is anonymous) and the hook that signs the caller out.
func WithSession(ctx context.Context, sess *Session, invalidate func() error) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sessionState{session: sess, invalidate: invalidate})
}

// SessionFrom returns the session stored in ctx, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	st, ok := ctx.Value(sessionCtxKey{}).(sessionState)
	if !ok || st.session == nil {
		return nil, false
	}
	return st.session, true
}

// InvalidateSession signs the caller out. It is a no-op when ctx carries no hook.
func InvalidateSession(ctx context.Context) error {
	st, ok := ctx.Value(sessionCtxKey{}).(sessionState)
	if !ok || st.invalidate == nil {
		return nil
	}
	return st.invalidate()
}

// RequireAdmin is the authorization gate shared by every mutation and
// privileged read. It returns ErrUnauthorized for anonymous or non-admin callers.
func RequireAdmin(ctx context.Context) (*Session, error) {
	sess, ok := SessionFrom(ctx)
	if !ok || !sess.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return sess, nil
}
