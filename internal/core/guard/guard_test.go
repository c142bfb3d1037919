package guard

import "testing"

func TestDecide(t *testing.T) {
	cases := []struct {
		name          string
		meta          RouteMeta
		authenticated bool
		want          Outcome
	}{
		{"protected without session", RouteMeta{RequiresAuth: true}, false, RedirectLogin},
		{"protected with session", RouteMeta{RequiresAuth: true}, true, Allow},
		{"guest-only with session", RouteMeta{RequiresGuest: true}, true, RedirectHome},
		{"guest-only without session", RouteMeta{RequiresGuest: true}, false, Allow},
		{"public without session", RouteMeta{}, false, Allow},
		{"public with session", RouteMeta{}, true, Allow},
		{"both flags without session", RouteMeta{RequiresAuth: true, RequiresGuest: true}, false, RedirectLogin},
		{"both flags with session", RouteMeta{RequiresAuth: true, RequiresGuest: true}, true, RedirectHome},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.meta, tc.authenticated); got != tc.want {
				t.Fatalf("Decide(%+v, %v) = %v, want %v", tc.meta, tc.authenticated, got, tc.want)
			}
		})
	}
}

func TestOutcomeTarget(t *testing.T) {
	if got := RedirectLogin.Target(); got != "/login" {
		t.Fatalf("expected /login, got %q", got)
	}
	if got := RedirectHome.Target(); got != "/" {
		t.Fatalf("expected /, got %q", got)
	}
	if got := Allow.Target(); got != "" {
		t.Fatalf("expected empty target, got %q", got)
	}
}
