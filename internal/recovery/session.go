package recovery

// ContactMethod is how the user asked to receive the OTP.
type ContactMethod string

const (
	MethodEmail ContactMethod = "email"
	MethodPhone ContactMethod = "phone"
)

// Payload is the in-memory transition payload carried between stages.
// A zero Payload means "nothing carried" (e.g. the flow was resumed
// after the process restarted) and stages fall back to the Store.
type Payload struct {
	Identifier  string
	SuccessCode string
}

// Session is the state threaded through a single recovery attempt. The
// identifier is set once by the request stage and immutable afterward;
// SuccessCode is set only by a successful verify call.
type Session struct {
	Identifier  string
	Method      ContactMethod
	SuccessCode string
}

// resolveVerify recovers the session needed to enter verification:
// the contact identifier, from the payload first and the store second.
// Returns ErrSessionExpired when neither source has it.
func resolveVerify(p Payload, st Store) (Session, error) {
	id := p.Identifier
	if id == "" {
		if stored, ok := st.PendingIdentifier(); ok {
			id = stored
		}
	}
	if id == "" {
		return Session{}, ErrSessionExpired
	}
	return Session{Identifier: id}, nil
}

// resolveReset recovers the session needed to enter the reset stage:
// identifier and success code, payload first, store fallback. A reset
// without a verified code is not a valid state, so either one missing
// yields ErrSessionExpired.
func resolveReset(p Payload, st Store) (Session, error) {
	sess, err := resolveVerify(p, st)
	if err != nil {
		return Session{}, err
	}
	code := p.SuccessCode
	if code == "" {
		if stored, ok := st.PendingSuccessCode(); ok {
			code = stored
		}
	}
	if code == "" {
		return Session{}, ErrSessionExpired
	}
	sess.SuccessCode = code
	return sess, nil
}
