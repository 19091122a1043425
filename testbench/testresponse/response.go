// Package testresponse holds the immutable Response produced by simulated
// HTTP requests in end-to-end tests.
package testresponse

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is a read-only view of a status code, headers and body plus the
// request that produced it.
type Response struct {
	status  int
	headers map[string][]string
	body    string
	request Request
}

// New copies headers so later changes by the caller are not observed.
func New(status int, headers map[string][]string, body string, request Request) *Response {
	return &Response{
		status:  status,
		headers: copyHeaders(headers),
		body:    body,
		request: request,
	}
}

// FromHTTP builds a Response from a recorded *http.Response body.
func FromHTTP(status int, header http.Header, body []byte, request Request) *Response {
	return New(status, header, string(body), request)
}

func (r *Response) Status() int                  { return r.status }
func (r *Response) Body() string                 { return r.body }
func (r *Response) Request() Request             { return r.request }
func (r *Response) Headers() map[string][]string { return copyHeaders(r.headers) }

// Header returns the first value stored under name. The lookup tries the exact
// name, then the lower-cased name, then the canonical MIME form, then any key
// equal under case folding.
func (r *Response) Header(name string) (string, bool) {
	for _, key := range []string{name, strings.ToLower(name), http.CanonicalHeaderKey(name)} {
		if values, ok := r.headers[key]; ok {
			return first(values)
		}
	}
	keys := make([]string, 0, len(r.headers))
	for k := range r.headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, name) {
			return first(r.headers[k])
		}
	}
	return "", false
}

func first(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// ── Status predicates ────────────────────────────────────────────────────────

func (r *Response) IsSuccessful() bool  { return r.status >= 200 && r.status < 300 }
func (r *Response) IsRedirect() bool    { return r.status >= 300 && r.status < 400 }
func (r *Response) IsClientError() bool { return r.status >= 400 && r.status < 500 }

// IsServerError is true for 5xx only; anything at or above 600 is not an
// HTTP status.
func (r *Response) IsServerError() bool { return r.status >= 500 && r.status < 600 }

func (r *Response) IsOk() bool           { return r.status == http.StatusOK }
func (r *Response) IsCreated() bool      { return r.status == http.StatusCreated }
func (r *Response) IsNoContent() bool    { return r.status == http.StatusNoContent }
func (r *Response) IsNotFound() bool     { return r.status == http.StatusNotFound }
func (r *Response) IsUnauthorized() bool { return r.status == http.StatusUnauthorized }
func (r *Response) IsForbidden() bool    { return r.status == http.StatusForbidden }

// IsJSON reports whether Content-Type contains application/json. Only the
// header name is matched case-insensitively.
func (r *Response) IsJSON() bool {
	ct, ok := r.Header("Content-Type")
	return ok && strings.Contains(ct, "application/json")
}

// ── Body decoding ────────────────────────────────────────────────────────────

// JSON decodes the body as an object. Anything else, including invalid JSON,
// yields an empty map.
func (r *Response) JSON() map[string]any {
	var v any
	if err := json.Unmarshal([]byte(r.body), &v); err != nil {
		return map[string]any{}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// JSONValue parses the body into an ldvalue.Value; invalid JSON is Null.
func (r *Response) JSONValue() ldvalue.Value {
	return ldvalue.Parse([]byte(r.body))
}

// JSONPath walks the body by object keys and array indexes. A missing step
// yields Null.
//
//	resp.JSONPath("data", "items", "0", "id").IntValue()
func (r *Response) JSONPath(keys ...string) ldvalue.Value {
	v := r.JSONValue()
	for _, k := range keys {
		switch v.Type() {
		case ldvalue.ObjectType:
			v = v.GetByKey(k)
		case ldvalue.ArrayType:
			i, err := strconv.Atoi(k)
			if err != nil {
				return ldvalue.Null()
			}
			v = v.GetByIndex(i)
		default:
			return ldvalue.Null()
		}
	}
	return v
}

func copyHeaders(h map[string][]string) map[string][]string {
	out := make(map[string][]string, len(h))
	for k, v := range h {
		out[k] = append([]string(nil), v...)
	}
	return out
}
