package tenant

import "strings"

// HostKind is the closed set of hostname classes a request can fall into.
type HostKind int

const (
	// HostLocalhostRoot is bare local access ("localhost", "localhost:3000").
	HostLocalhostRoot HostKind = iota
	// HostLocalhostSubdomain is a named subdomain of localhost ("acme.localhost:3000").
	HostLocalhostSubdomain
	// HostProductionSubdomain is the first label of a host with three or more labels.
	HostProductionSubdomain
	// HostCustomDomain is a tenant-owned DNS name used as a lookup key as a whole.
	HostCustomDomain
	// HostReserved is a platform-level label that never maps to a tenant.
	HostReserved
)

func (k HostKind) String() string {
	switch k {
	case HostLocalhostRoot:
		return "localhost_root"
	case HostLocalhostSubdomain:
		return "localhost_subdomain"
	case HostProductionSubdomain:
		return "production_subdomain"
	case HostCustomDomain:
		return "custom_domain"
	case HostReserved:
		return "reserved"
	default:
		return "unknown"
	}
}

const (
	// DefaultHost replaces a missing or empty Host header.
	DefaultHost = "localhost:3000"

	localhostLabel = "localhost"
)

// DefaultReservedNames are labels reserved for platform routes.
var DefaultReservedNames = []string{"www", "api", "admin", "app"}

// Host is the classification of a request hostname.
type Host struct {
	Kind HostKind
	// Name is the subdomain label, the custom domain or the reserved label.
	// It is empty for HostLocalhostRoot.
	Name string
	// Raw is the host value as received, before normalization.
	Raw string
}

// IsSubdomain reports whether the host resolves through the subdomain index.
func (h Host) IsSubdomain() bool {
	return h.Kind == HostLocalhostSubdomain || h.Kind == HostProductionSubdomain
}

// IsReserved reports whether the host is a platform-level name.
func (h Host) IsReserved() bool {
	return h.Kind == HostReserved
}

// Defaulted reports whether the request carried no host and the default
// host was used instead.
func (h Host) Defaulted() bool {
	return strings.TrimSpace(h.Raw) == ""
}

func (h Host) String() string {
	if h.Name == "" {
		return h.Kind.String()
	}
	return h.Kind.String() + "(" + h.Name + ")"
}

// Parser classifies hostnames. It is immutable after construction and safe
// for concurrent use.
type Parser struct {
	reserved    map[string]struct{}
	defaultHost string
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithReservedNames replaces the reserved label set.
func WithReservedNames(names ...string) ParserOption {
	return func(p *Parser) {
		p.reserved = make(map[string]struct{}, len(names))
		for _, n := range names {
			if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
				p.reserved[n] = struct{}{}
			}
		}
	}
}

// WithDefaultHost sets the host substituted for an empty Host header.
// Empty values are ignored.
func WithDefaultHost(host string) ParserOption {
	return func(p *Parser) {
		if h := normalizeHost(host); h != "" {
			p.defaultHost = h
		}
	}
}

// NewParser creates a parser with DefaultReservedNames and DefaultHost
// unless overridden.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{defaultHost: DefaultHost}
	WithReservedNames(DefaultReservedNames...)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Classify classifies host with the default parser.
func Classify(host string) Host {
	return defaultParser.Classify(host)
}

// IsReserved reports whether label is in the reserved set.
func (p *Parser) IsReserved(label string) bool {
	_, ok := p.reserved[strings.ToLower(label)]
	return ok
}

// Classify maps a raw Host header value to its classification. It never
// fails: an empty host is replaced by the default host.
func (p *Parser) Classify(raw string) Host {
	host := normalizeHost(raw)
	if stripPort(host) == "" {
		host = p.defaultHost
	}

	labels := strings.Split(host, ".")
	first := stripPort(labels[0])

	if strings.Contains(host, localhostLabel) {
		switch {
		case first == localhostLabel || first == "":
			return Host{Kind: HostLocalhostRoot, Raw: raw}
		case p.IsReserved(first):
			return Host{Kind: HostReserved, Name: first, Raw: raw}
		default:
			return Host{Kind: HostLocalhostSubdomain, Name: first, Raw: raw}
		}
	}

	if p.IsReserved(first) {
		return Host{Kind: HostReserved, Name: first, Raw: raw}
	}

	if len(labels) >= 3 && first != "" {
		return Host{Kind: HostProductionSubdomain, Name: first, Raw: raw}
	}

	return Host{Kind: HostCustomDomain, Name: stripPort(host), Raw: raw}
}

// normalizeHost lowercases host and drops surrounding spaces and the
// trailing dot of a fully qualified name.
func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndexByte(host, ':'); i != -1 {
		// "acme.example.com.:443"
		if host[:i] != "" && host[i-1] == '.' {
			host = host[:i-1] + host[i:]
		}
	}
	return strings.TrimSuffix(host, ".")
}

// stripPort removes a trailing ":port" while leaving bracketed IPv6
// literals intact.
func stripPort(host string) string {
	if strings.HasPrefix(host, "[") {
		if i := strings.LastIndexByte(host, ']'); i != -1 {
			return host[:i+1]
		}
		return host
	}
	if strings.Count(host, ":") != 1 {
		return host
	}
	i := strings.LastIndexByte(host, ':')
	for _, c := range host[i+1:] {
		if c < '0' || c > '9' {
			return host
		}
	}
	return host[:i]
}
