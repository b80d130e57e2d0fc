// Package csp builds Content-Security-Policy header values.
package csp

import "strings"

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// directiveOrder fixes the rendering order so header values are stable.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
}

// Policy is a set of CSP directives. The zero value is an empty policy.
//
// Policy is not safe for concurrent mutation; build it once at startup.
type Policy struct {
	directives map[string][]string
}

// New returns an empty policy.
func New() *Policy {
	return &Policy{directives: make(map[string][]string)}
}

// Set replaces the sources of a directive. Unknown directives are ignored
// when the header is rendered.
func (p *Policy) Set(directive string, sources ...string) *Policy {
	if p.directives == nil {
		p.directives = make(map[string][]string)
	}
	p.directives[directive] = sources
	return p
}

// Sources returns the sources of a directive, or nil.
func (p *Policy) Sources(directive string) []string {
	if p == nil {
		return nil
	}
	return p.directives[directive]
}

// String renders the header value, e.g. "default-src 'none'; frame-ancestors 'none'".
func (p *Policy) String() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for _, d := range directiveOrder {
		sources := p.directives[d]
		if len(sources) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(d)
		b.WriteByte(' ')
		b.WriteString(strings.Join(sources, " "))
	}
	return b.String()
}

// HeaderName returns the header the policy is sent under.
func HeaderName(reportOnly bool) string {
	if reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// APIPolicy is the policy for JSON and CSV responses, which never load
// subresources.
func APIPolicy() *Policy {
	return New().
		Set("default-src", "'none'").
		Set("frame-ancestors", "'none'").
		Set("base-uri", "'none'").
		Set("form-action", "'none'")
}

// ChartPolicy is the policy for rendered charts. SVG output carries inline
// style attributes.
func ChartPolicy() *Policy {
	return APIPolicy().
		Set("style-src", "'unsafe-inline'").
		Set("img-src", "'self'", "data:")
}

// SwaggerUIPolicy allows the inline bootstrap script and styles of the
// bundled Swagger UI.
func SwaggerUIPolicy() *Policy {
	return New().
		Set("default-src", "'self'").
		Set("script-src", "'self'", "'unsafe-inline'").
		Set("style-src", "'self'", "'unsafe-inline'").
		Set("img-src", "'self'", "data:").
		Set("font-src", "'self'", "data:").
		Set("connect-src", "'self'").
		Set("frame-ancestors", "'none'").
		Set("base-uri", "'self'").
		Set("form-action", "'self'").
		Set("object-src", "'none'")
}
