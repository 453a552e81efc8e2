// Package guard gates navigation between the application's destinations
// based on authentication and two-factor state. It only reads session
// state, never mutates it.
package guard

import (
	"context"
	"log/slog"

	"github.com/yogeshkerkar48/Phonebook-Application/pkg/apiclient"
)

// Destination names. These mirror the application's route surface.
const (
	RouteLogin       = "login"
	RouteRegister    = "register"
	RouteTwoFactor   = "2fa-verify"
	RouteSetup2FA    = "2fa-setup"
	RouteDashboard   = "dashboard"
	RouteAddContact  = "add-contact"
	RouteEditContact = "edit-contact"
)

// Requirement declares what a destination demands before it may render.
// The zero value demands nothing: an undeclared destination is allowed
// through. That permissive fallback is deliberate and mirrors the
// application's router; fail-closed would silently break additions to
// the route surface.
type Requirement struct {
	RequiresAuth      bool
	RequiresTwoFactor bool
	GuestOnly         bool
}

// DefaultRoutes returns the application's route table. Unknown
// destinations resolve as the dashboard (the catch-all).
func DefaultRoutes() map[string]Requirement {
	return map[string]Requirement{
		RouteLogin:       {GuestOnly: true},
		RouteRegister:    {GuestOnly: true},
		RouteTwoFactor:   {RequiresAuth: true},
		RouteSetup2FA:    {RequiresAuth: true},
		RouteDashboard:   {RequiresAuth: true, RequiresTwoFactor: true},
		RouteAddContact:  {RequiresAuth: true, RequiresTwoFactor: true},
		RouteEditContact: {RequiresAuth: true, RequiresTwoFactor: true},
	}
}

// Session is the read-only view of authentication state the guard needs.
type Session interface {
	Initialize(ctx context.Context)
	IsAuthenticated() bool
	User() *apiclient.Profile
	TwoFactorVerified() bool
}

// Decision is the outcome of resolving a navigation attempt.
type Decision struct {
	// Target is the destination to render: the requested one when the
	// navigation is allowed, a different one when redirected.
	Target string

	// Redirected reports whether the guard diverted the navigation.
	Redirected bool
}

// Guard evaluates every navigation attempt against the route table.
type Guard struct {
	session Session
	routes  map[string]Requirement
	logger  *slog.Logger
}

func New(session Session, routes map[string]Requirement, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	if routes == nil {
		routes = DefaultRoutes()
	}

	return &Guard{session: session, routes: routes, logger: logger}
}

// Resolve decides whether navigation to dest may proceed. It waits for
// session initialization first, then applies the checks in fixed order;
// the first match decides. An unauthenticated request to an auth+2FA
// destination therefore always lands on login, never on the 2FA page.
func (g *Guard) Resolve(ctx context.Context, dest string) Decision {
	g.session.Initialize(ctx)

	redirected := false
	if _, known := g.routes[dest]; !known {
		// Catch-all: unmatched destinations fall through to the
		// dashboard, which is then guarded like any other navigation.
		dest = RouteDashboard
		redirected = true
	}
	req := g.routes[dest]

	switch {
	case req.RequiresAuth && !g.session.IsAuthenticated():
		return g.redirect(dest, RouteLogin, "unauthenticated")

	case req.GuestOnly && g.session.IsAuthenticated():
		return g.redirect(dest, RouteDashboard, "already authenticated")

	case req.RequiresTwoFactor && g.needsTwoFactor():
		return g.redirect(dest, RouteTwoFactor, "2fa unverified")
	}

	return Decision{Target: dest, Redirected: redirected}
}

// needsTwoFactor reports whether the account has 2FA enabled and this
// session has not yet answered the challenge. A missing profile counts
// as 2FA disabled.
func (g *Guard) needsTwoFactor() bool {
	user := g.session.User()
	if user == nil || !user.Is2FAEnabled {
		return false
	}
	return !g.session.TwoFactorVerified()
}

func (g *Guard) redirect(from, to, reason string) Decision {
	g.logger.Debug("navigation redirected", "from", from, "to", to, "reason", reason)
	return Decision{Target: to, Redirected: true}
}
