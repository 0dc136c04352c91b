package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/pawmatch/pawmatch/pkg/httpx"
	"github.com/pawmatch/pawmatch/pkg/logger"
)

const (
	// SessionName is the cookie name carrying the encrypted session ID.
	SessionName = "pawmatch_session"

	// SessionMemberIDKey and SessionHouseholdIDKey are the session value keys
	// set on household create/join and read back by RequireMember.
	SessionMemberIDKey    = "member_id"
	SessionHouseholdIDKey = "household_id"
)

// RequireMember is a chi middleware that enforces authentication via session
// cookies. It reads the session cookie, extracts the member and household
// ids, and injects them into the request context.
// Returns 401 Unauthorized if the session is missing, invalid, or incomplete.
//
// After this middleware, handlers can safely call auth.IdentityFromCtx(r.Context()).
func RequireMember(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			memberID, ok := sessionUUID(session, SessionMemberIDKey)
			if !ok {
				log.WarnContext(r.Context(), "session missing member_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			householdID, ok := sessionUUID(session, SessionHouseholdIDKey)
			if !ok {
				log.WarnContext(r.Context(), "session missing household_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			ctx := WithIdentity(r.Context(), Identity{MemberID: memberID, HouseholdID: householdID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SaveIdentity writes the member identity into the session and persists it.
// Called after household create/join establishes who the caller is.
func SaveIdentity(store sessions.Store, w http.ResponseWriter, r *http.Request, id Identity) error {
	session, err := store.Get(r, SessionName)
	if err != nil {
		// A tampered cookie still yields a fresh session from RedisStore.New;
		// other stores may error, in which case we start clean.
		session, _ = store.New(r, SessionName)
	}
	session.Values[SessionMemberIDKey] = id.MemberID.String()
	session.Values[SessionHouseholdIDKey] = id.HouseholdID.String()
	return store.Save(r, w, session)
}

func sessionUUID(session *sessions.Session, key string) (uuid.UUID, bool) {
	raw, ok := session.Values[key].(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
