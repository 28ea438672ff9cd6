package router

import (
	"context"
	"strings"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

type RouteName string

const (
	RouteHome       RouteName = "home"
	RouteLogin      RouteName = "login"
	RouteRegister   RouteName = "register"
	RoutePlans      RouteName = "plans"
	RouteGenerate   RouteName = "generate"
	RoutePlanDetail RouteName = "plan-detail"
	RouteStatus     RouteName = "status"
	RouteNotFound   RouteName = "not-found"
)

const (
	PathHome     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
	PathPlans    = "/plans"
	PathGenerate = "/plans/auto"
	PathStatus   = "/status"
	PathNotFound = "/404"
)

type Route struct {
	Name      RouteName
	Pattern   string
	Protected bool
}

// Table is matched static-first, so "/plans/auto" never reaches ":id".
var Table = []Route{
	{Name: RouteHome, Pattern: PathHome},
	{Name: RouteLogin, Pattern: PathLogin},
	{Name: RouteRegister, Pattern: PathRegister},
	{Name: RoutePlans, Pattern: PathPlans, Protected: true},
	{Name: RouteGenerate, Pattern: PathGenerate, Protected: true},
	{Name: RoutePlanDetail, Pattern: "/plans/:id", Protected: true},
	{Name: RouteStatus, Pattern: PathStatus, Protected: true},
	{Name: RouteNotFound, Pattern: PathNotFound},
}

// Session reports whether a credential is currently stored.
type Session interface {
	Authenticated(ctx context.Context) bool
}

type Resolution struct {
	Route  Route
	Params map[string]string
	// Path is where the user actually lands.
	Path string
	// From is the originally requested path when the guard redirected.
	From string
}

func (r Resolution) Redirected() bool {
	return r.From != ""
}

type Guard struct {
	session Session
}

func NewGuard(session Session) *Guard {
	return &Guard{session: session}
}

// State reads the token slot on every call; nothing is cached.
func (g *Guard) State(ctx context.Context) State {
	if g.session != nil && g.session.Authenticated(ctx) {
		return Authenticated
	}
	return Unauthenticated
}

func (g *Guard) Resolve(ctx context.Context, path string) Resolution {
	path = Normalize(path)
	route, params := Match(path)
	state := g.State(ctx)

	switch {
	case route.Name == RouteHome:
		target := PathLogin
		if state == Authenticated {
			target = PathPlans
		}
		landed, _ := Match(target)
		return Resolution{Route: landed, Params: map[string]string{}, Path: target}
	case route.Protected && state == Unauthenticated:
		login, _ := Match(PathLogin)
		return Resolution{Route: login, Params: map[string]string{}, Path: PathLogin, From: path}
	}
	return Resolution{Route: route, Params: params, Path: path}
}

// Match finds the route for path; unknown paths map to the not-found route.
func Match(path string) (Route, map[string]string) {
	path = Normalize(path)
	for _, r := range Table {
		if !strings.Contains(r.Pattern, ":") && r.Pattern == path {
			return r, map[string]string{}
		}
	}
	segments := split(path)
	for _, r := range Table {
		if !strings.Contains(r.Pattern, ":") {
			continue
		}
		pattern := split(r.Pattern)
		if len(pattern) != len(segments) {
			continue
		}
		params := map[string]string{}
		ok := true
		for i, seg := range pattern {
			if strings.HasPrefix(seg, ":") {
				if segments[i] == "" {
					ok = false
					break
				}
				params[seg[1:]] = segments[i]
				continue
			}
			if seg != segments[i] {
				ok = false
				break
			}
		}
		if ok {
			return r, params
		}
	}
	for _, r := range Table {
		if r.Name == RouteNotFound {
			return r, map[string]string{}
		}
	}
	return Route{Name: RouteNotFound, Pattern: PathNotFound}, map[string]string{}
}

// Normalize strips query strings and trailing slashes: "/plans/?x" is "/plans".
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

func PlanPath(id string) string {
	return PathPlans + "/" + id
}

func split(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}
