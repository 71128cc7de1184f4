package auth

import "net/http"

// Cookie names per surface. The admin and trainer surfaces carry
// independently issued tokens, so a browser can hold both sessions at
// once without collision.
const (
	AdminCookie   = "beastgym_admin_token"
	TrainerCookie = "beastgym_trainer_token"
)

// Authenticate extracts the session token from the named cookie and
// verifies it. An absent cookie is not an error: the request is simply
// anonymous. The check is pure decode-and-validate with no I/O, cheap
// enough to run on every request.
func (c *Codec) Authenticate(r *http.Request, cookieName string) (Principal, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return Principal{}, false
	}
	return c.Verify(cookie.Value)
}
