package testresponse

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/alessio/shellescape"
)

// Request echoes the parameters a simulated request was made with.
type Request struct {
	Method  string
	URI     string
	Data    map[string]any
	Query   map[string]string
	Headers map[string]string
}

// URL joins base and URI and appends the query string, keys sorted.
//
//	Request{URI: "/users", Query: {"page": "2"}}.URL("http://localhost")
//	// http://localhost/users?page=2
func (r Request) URL(base string) string {
	u := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(r.URI, "/")
	if len(r.Query) == 0 {
		return u
	}
	q := url.Values{}
	for k, v := range r.Query {
		q.Set(k, v)
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + q.Encode()
}

// Curl renders the request as a shell-quoted curl command, for failure
// messages that should be easy to reproduce by hand.
func (r Request) Curl(base string) string {
	var cmd curlCommand
	cmd.add("curl", "-X", strings.ToUpper(r.Method))

	keys := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.add("-H", k+": "+r.Headers[k])
	}

	if len(r.Data) > 0 {
		if body, err := json.Marshal(r.Data); err == nil {
			cmd.add("--data", string(body))
		} else {
			cmd.add("--data", fmt.Sprint(r.Data))
		}
	}
	cmd.add(r.URL(base))
	return cmd.String()
}

type curlCommand []string

func (c *curlCommand) add(args ...string) {
	for _, a := range args {
		*c = append(*c, shellescape.Quote(a))
	}
}

func (c curlCommand) String() string {
	return strings.Join(c, " ")
}
