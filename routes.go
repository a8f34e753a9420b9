package authgate

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// RouteClass defines a public type used by authgate APIs.
//
// RouteClass instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RouteClass uint8

const (
	// RoutePublic is any path that is neither protected nor the auth entry point.
	RoutePublic RouteClass = iota
	// RouteProtected is any path under the protected prefix.
	RouteProtected
	// RouteAuthEntry is the sign-in entry path.
	RouteAuthEntry
)

func (c RouteClass) String() string {
	switch c {
	case RoutePublic:
		return "public"
	case RouteProtected:
		return "protected"
	case RouteAuthEntry:
		return "auth_entry"
	default:
		return "unknown"
	}
}

// Decision is the gate's verdict for one request: continue to the handler or
// redirect elsewhere.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// decideContinue and redirect are the only two constructors; a Decision is
// never partially populated.
func decideContinue() Decision {
	return Decision{Allow: true}
}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// routeTable is the immutable classification surface compiled once at Build.
type routeTable struct {
	signInPath      string
	protectedPrefix string
	signedInHome    string
	excluded        []glob.Glob
}

func newRouteTable(cfg RouteConfig) (*routeTable, error) {
	t := &routeTable{
		signInPath:      cfg.SignInPath,
		protectedPrefix: cfg.ProtectedPrefix,
		signedInHome:    cfg.SignedInHome,
	}
	// Patterns are compiled without a separator so "*.png" matches at any
	// depth.
	for _, p := range cfg.ExcludedPatterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid excluded-path pattern %q: %w", p, err)
		}
		t.excluded = append(t.excluded, g)
	}
	return t, nil
}

// classify is total: every path maps to exactly one class.
func (t *routeTable) classify(path string) RouteClass {
	if path == t.signInPath {
		return RouteAuthEntry
	}
	if path == t.protectedPrefix || strings.HasPrefix(path, t.protectedPrefix+"/") {
		return RouteProtected
	}
	return RoutePublic
}

func (t *routeTable) excludedPath(path string) bool {
	for _, g := range t.excluded {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// authorize is the gate decision table as a pure function of (class,
// presence). It performs no I/O and holds no state.
func (t *routeTable) authorize(class RouteClass, sessionPresent bool) Decision {
	switch class {
	case RouteProtected:
		if sessionPresent {
			return decideContinue()
		}
		return redirect(t.signInPath)
	case RouteAuthEntry:
		if sessionPresent {
			return redirect(t.signedInHome)
		}
		return decideContinue()
	default:
		return decideContinue()
	}
}

// Classify maps a request path to its route class. Classification is a pure
// function of the path and the static route configuration.
func (e *Engine) Classify(path string) RouteClass {
	if e == nil || e.routes == nil {
		return RoutePublic
	}
	return e.routes.classify(path)
}

// Excluded reports whether the gate skips path entirely (static assets,
// framework-internal paths). The allowlist is compiled once at Build.
func (e *Engine) Excluded(path string) bool {
	if e == nil || e.routes == nil {
		return false
	}
	return e.routes.excludedPath(path)
}

// Authorize returns the gate decision for one request. It is a pure function
// of (route class, session presence): no network or store access occurs, so
// it is safe to run on every request.
func (e *Engine) Authorize(path string, sessionPresent bool) Decision {
	if e == nil || e.routes == nil {
		return decideContinue()
	}
	class := e.routes.classify(path)
	d := e.routes.authorize(class, sessionPresent)
	if !d.Allow {
		if class == RouteProtected {
			e.metricInc(MetricRedirectToSignIn)
		} else {
			e.metricInc(MetricRedirectToHome)
		}
	}
	return d
}
