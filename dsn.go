package pdooci

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultPort is the listener port assumed when an easy connect string names none.
const DefaultPort = 1521

// DataSource is a parsed `[<driver>:]dbname=//host:port/service[;charset=XXX][;k=v]` string.
// Host, Port and Service are only filled for easy connect strings; TNS aliases and
// descriptors are kept in ConnectString alone.
type DataSource struct {
	Driver        string
	ConnectString string
	Host          string
	Port          int
	Service       string
	Charset       string
	Params        map[string]string
}

// ParseDataSource splits s into its driver prefix, connect string and directives.
func ParseDataSource(s string) (DataSource, error) {
	src := DataSource{Driver: DefaultDriver}

	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ':'); i > 0 {
		rest := s[i+1:]
		if strings.HasPrefix(rest, "dbname=") || strings.HasPrefix(rest, "//") {
			src.Driver = s[:i]
			s = rest
		}
	}

	parts := strings.Split(s, ";")
	conn := parts[0]
	switch {
	case strings.HasPrefix(conn, "dbname=//"):
		conn = strings.TrimPrefix(conn, "dbname=//")
	case strings.HasPrefix(conn, "dbname="):
		conn = strings.TrimPrefix(conn, "dbname=")
	}
	conn = strings.TrimPrefix(conn, "//")
	if conn == "" {
		return src, usageErr("dsn", "missing connect string in %q", s)
	}
	src.ConnectString = conn

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if strings.EqualFold(k, "charset") {
			src.Charset = v
			continue
		}
		if src.Params == nil {
			src.Params = map[string]string{}
		}
		src.Params[k] = v
	}

	if !strings.HasPrefix(conn, "(") {
		src.parseEasyConnect(conn)
	}
	return src, nil
}

// parseEasyConnect fills Host, Port and Service from host[:port][/service]. A bare word
// without port or service is taken for a TNS alias and left alone.
func (src *DataSource) parseEasyConnect(conn string) {
	hostPort, service, hasService := strings.Cut(conn, "/")
	host, port, hasPort := strings.Cut(hostPort, ":")
	if !hasService && !hasPort {
		return
	}

	src.Host = host
	src.Service = service
	src.Port = DefaultPort
	if hasPort {
		if p, err := strconv.Atoi(port); err == nil {
			src.Port = p
		}
	}
}

// EasyConnect reports whether the connect string was a host/port/service triple.
func (src DataSource) EasyConnect() bool {
	return src.Host != ""
}

func (src DataSource) String() string {
	var b strings.Builder
	b.WriteString(src.Driver)
	b.WriteString(":dbname=//")
	b.WriteString(src.ConnectString)
	if src.Charset != "" {
		b.WriteString(";charset=")
		b.WriteString(src.Charset)
	}

	keys := make([]string, 0, len(src.Params))
	for k := range src.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(";" + k + "=" + src.Params[k])
	}
	return b.String()
}
