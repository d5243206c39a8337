// Package uri implements the browser's URI resolver: parsing an
// absolute or relative reference, resolving it against a base URI, and
// normalizing the result.
package uri

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalid is returned when the input cannot be parsed as a URI: it
// exceeds the length cap, doesn't match the RFC 3986 shape, or a
// required base-URI completion itself fails to parse.
var ErrInvalid = errors.New("uri: invalid")

// maxLength bounds the input to guard against pathological regex input.
const maxLength = 1024

// uriShape matches scheme, authority, path, query, and fragment in one
// pass. Group indices: 2=scheme, 4=authority, 5=path, 7=query, 9=fragment.
var uriShape = regexp.MustCompile(`^(([^:/?#]+):)?(//([^/?#]*))?([^?#]*)(\?([^#]*))?(#(.*))?`)

// authorityShape splits an authority into userinfo and host:port.
var authorityShape = regexp.MustCompile(`^(([^@]*)@)?(.*)$`)

// hostPortShape splits host:port, tolerating a missing port.
var hostPortShape = regexp.MustCompile(`^([^:]*)(:(.*))?$`)

// URI is an immutable parsed reference.
type URI struct {
	Original string

	Scheme string

	// Authority fields. Authority is considered empty iff all four of
	// these fields are empty.
	User     string
	Password string
	Host     string
	Port     string

	Path     string
	Query    string
	Fragment string

	hasQuery    bool
	hasFragment bool
}

// HasAuthority reports whether the authority component is non-empty.
func (u *URI) HasAuthority() bool {
	return u.User != "" || u.Password != "" || u.Host != "" || u.Port != ""
}

// HasQuery reports whether a query component (possibly empty) was present.
func (u *URI) HasQuery() bool { return u.hasQuery }

// HasFragment reports whether a fragment component (possibly empty) was present.
func (u *URI) HasFragment() bool { return u.hasFragment }

// String reconstructs the URI's textual form.
func (u *URI) String() string {
	var b strings.Builder
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteByte(':')
	}
	if u.HasAuthority() {
		b.WriteString("//")
		if u.User != "" || u.Password != "" {
			b.WriteString(u.User)
			if u.Password != "" {
				b.WriteByte(':')
				b.WriteString(u.Password)
			}
			b.WriteByte('@')
		}
		b.WriteString(u.Host)
		if u.Port != "" {
			b.WriteByte(':')
			b.WriteString(u.Port)
		}
	}
	b.WriteString(u.Path)
	if u.hasQuery {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}
	if u.hasFragment {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}

// Equal compares two URIs field by field, ignoring the original input
// text they were parsed from.
func (u *URI) Equal(o *URI) bool {
	if u == nil || o == nil {
		return u == o
	}
	return u.Scheme == o.Scheme &&
		u.User == o.User &&
		u.Password == o.Password &&
		u.Host == o.Host &&
		u.Port == o.Port &&
		u.Path == o.Path &&
		u.Query == o.Query &&
		u.Fragment == o.Fragment
}

// Parse parses input as a URI reference, optionally resolving it
// against base when input has no scheme of its own. It returns
// ErrInvalid itself, unwrapped, when parsing fails for any reason.
func Parse(input string, base *URI) (*URI, error) {
	if len(input) > maxLength {
		return nil, ErrInvalid
	}

	m := uriShape.FindStringSubmatch(input)
	if m == nil {
		return nil, ErrInvalid
	}

	u := &URI{Original: input}
	u.Scheme = m[2]
	authority := m[4]
	u.Path = m[5]
	if m[6] != "" {
		u.hasQuery = true
		u.Query = m[7]
	}
	if m[8] != "" {
		u.hasFragment = true
		u.Fragment = m[9]
	}

	if authority != "" {
		if err := parseAuthority(u, authority); err != nil {
			return nil, err
		}
	}

	if u.Scheme == "" && base != nil {
		if err := completeFromBase(u, input, base); err != nil {
			return nil, err
		}
	}

	normalize(u)
	return u, nil
}

func parseAuthority(u *URI, authority string) error {
	am := authorityShape.FindStringSubmatch(authority)
	if am == nil {
		return ErrInvalid
	}
	userinfo := am[2]
	hostport := am[3]

	if userinfo != "" {
		if idx := strings.IndexByte(userinfo, ':'); idx >= 0 {
			u.User = userinfo[:idx]
			u.Password = userinfo[idx+1:]
		} else {
			u.User = userinfo
		}
	}

	hpm := hostPortShape.FindStringSubmatch(hostport)
	if hpm == nil {
		return ErrInvalid
	}
	u.Host = hpm[1]
	if hpm[2] != "" {
		if _, err := strconv.Atoi(hpm[3]); err != nil && hpm[3] != "" {
			return ErrInvalid
		}
		u.Port = hpm[3]
	}
	return nil
}

// completeFromBase resolves a relative reference: the parsed reference
// has no scheme, so we splice it onto base according to which of its
// components are present.
func completeFromBase(u *URI, input string, base *URI) error {
	switch {
	case strings.HasPrefix(input, "//"):
		// scheme-relative
		resolved, err := Parse(base.Scheme+":"+input, nil)
		if err != nil {
			return err
		}
		*u = *resolved
		u.Original = input
		return nil

	case strings.HasPrefix(input, "#"):
		// fragment-only: everything else carries over from base.
		*u = *base
		u.Original = input
		u.hasFragment = true
		u.Fragment = input[1:]
		return nil

	case !u.HasAuthority() && strings.HasPrefix(u.Path, "/"):
		// origin-relative
		resolved, err := Parse(base.Scheme+"://"+base.Host+input, nil)
		if err != nil {
			return err
		}
		*u = *resolved
		u.Original = input
		return nil

	case !u.HasAuthority() && u.Path != "":
		var combined string
		if base.Path == "/" {
			combined = joinOneSlash(base.String(), input)
		} else {
			combined = joinOneSlash(dropLastSegment(base.String()), input)
		}
		resolved, err := Parse(combined, nil)
		if err != nil {
			return err
		}
		*u = *resolved
		u.Original = input
		return nil

	default:
		return nil
	}
}

func joinOneSlash(prefix, suffix string) string {
	if strings.HasSuffix(prefix, "/") {
		return prefix + suffix
	}
	return prefix + "/" + suffix
}

// dropLastSegment removes everything after the final "/" in s,
// keeping the slash itself.
func dropLastSegment(s string) string {
	if idx := strings.LastIndexByte(s, '/'); idx >= 0 {
		return s[:idx+1]
	}
	return s
}

// normalize lowercases scheme and host and defaults an empty path to
// "/" when an authority is present.
func normalize(u *URI) {
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.HasAuthority() && u.Path == "" {
		u.Path = "/"
	}
}
