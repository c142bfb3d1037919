// Package guard decides whether a navigation may proceed based on route
// metadata and the presence of a session. It never looks at token validity.
package guard

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// RouteMeta is the access-control metadata declared by a route. A route
// with neither flag is public.
type RouteMeta struct {
	RequiresAuth  bool
	RequiresGuest bool
}

type Outcome int

const (
	Allow Outcome = iota
	RedirectLogin
	RedirectHome
)

func (o Outcome) String() string {
	switch o {
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return "allow"
	}
}

// Target returns the redirect destination, or "" for Allow.
func (o Outcome) Target() string {
	switch o {
	case RedirectLogin:
		return LoginPath
	case RedirectHome:
		return HomePath
	default:
		return ""
	}
}

// Decide applies the navigation rules in order: protected routes need a
// session, guest-only routes need its absence, anything else passes.
func Decide(meta RouteMeta, authenticated bool) Outcome {
	switch {
	case meta.RequiresAuth && !authenticated:
		return RedirectLogin
	case meta.RequiresGuest && authenticated:
		return RedirectHome
	default:
		return Allow
	}
}
