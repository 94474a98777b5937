package authz

import (
	"net/http"
	"strings"
)

// Access is the classification of a request.
type Access int

const (
	Protected Access = iota
	Public
)

func (a Access) String() string {
	if a == Public {
		return "public"
	}
	return "protected"
}

// Rule matches a public route.
//
// Method is an HTTP method, or empty for any method. Pattern is a slash
// separated path where a "{id}" segment matches a decimal identifier and
// every other segment matches literally. Trailing slashes and the query
// string are ignored and the segment count must match exactly, so
// "/products/{id}" does not match "/products/" or "/products/5/orders/".
type Rule struct {
	Method  string
	Pattern string
}

// Policy is an ordered, immutable set of public routes. Any request that no
// rule matches is Protected.
type Policy struct {
	rules []compiledRule
}

type compiledRule struct {
	method   string
	segments []string
}

const idSegment = "{id}"

// NewPolicy compiles rules. The slice is copied.
func NewPolicy(rules ...Rule) *Policy {
	p := &Policy{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		p.rules = append(p.rules, compiledRule{
			method:   strings.ToUpper(r.Method),
			segments: splitPath(r.Pattern),
		})
	}
	return p
}

// DefaultPolicy is the public surface of the affiliate API: product detail
// for link visitors, anonymous order placement, visit recording, token
// exchange and shop registration.
func DefaultPolicy() *Policy {
	return NewPolicy(
		Rule{Method: http.MethodGet, Pattern: "/products/{id}"},
		Rule{Method: http.MethodPost, Pattern: "/orders/"},
		Rule{Pattern: "/analytics/visit"},
		Rule{Method: http.MethodPost, Pattern: "/token"},
		Rule{Method: http.MethodPost, Pattern: "/shops/"},
	)
}

// Classify reports whether a request to path with method is public.
func (p *Policy) Classify(method, path string) Access {
	method = strings.ToUpper(method)
	if method == "" {
		method = http.MethodGet
	}
	segs := splitPath(path)

	for _, r := range p.rules {
		if r.method != "" && r.method != method {
			continue
		}
		if matchSegments(r.segments, segs) {
			return Public
		}
	}
	return Protected
}

func matchSegments(pattern, segs []string) bool {
	if len(pattern) != len(segs) {
		return false
	}
	for i, p := range pattern {
		if p == idSegment {
			if !isDecimal(segs[i]) {
				return false
			}
			continue
		}
		if p != segs[i] {
			return false
		}
	}
	return true
}

func splitPath(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
