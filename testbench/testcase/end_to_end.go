package testcase

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/km-arc/go-laravel-testbench/framework/config"
	"github.com/km-arc/go-laravel-testbench/framework/routing"
	"github.com/km-arc/go-laravel-testbench/testbench"
	"github.com/km-arc/go-laravel-testbench/testbench/testresponse"
)

// Response is the value every request helper returns.
type Response = testresponse.Response

// EndToEndTestCase simulates HTTP requests against the test application.
//
// By default requests go to StubDispatcher and always come back as 200 with
// an empty body. Call UseRouting, implement DefinesDispatcher or set
// TESTBENCH_DISPATCHER=router to dispatch through the application router.
type EndToEndTestCase struct {
	IntegrationTestCase

	baseURL    string
	headers    map[string]string
	dispatcher Dispatcher
}

// TearDownTest also forgets headers, base URL and dispatcher set by the test.
func (s *EndToEndTestCase) TearDownTest() {
	s.IntegrationTestCase.TearDownTest()
	s.baseURL = ""
	s.headers = nil
	s.dispatcher = nil
}

// ── Request defaults ─────────────────────────────────────────────────────────

// WithHeaders adds default headers sent with every request of this test.
func (s *EndToEndTestCase) WithHeaders(headers map[string]string) *EndToEndTestCase {
	for k, v := range headers {
		s.WithHeader(k, v)
	}
	return s
}

func (s *EndToEndTestCase) WithHeader(name, value string) *EndToEndTestCase {
	if s.headers == nil {
		s.headers = make(map[string]string)
	}
	s.headers[name] = value
	return s
}

// WithBaseURL overrides APP_URL for display URLs and routed requests.
func (s *EndToEndTestCase) WithBaseURL(base string) *EndToEndTestCase {
	s.baseURL = strings.TrimRight(base, "/")
	return s
}

// BaseURL returns the base URL requests are resolved against.
func (s *EndToEndTestCase) BaseURL() string {
	if s.baseURL != "" {
		return s.baseURL
	}
	return strings.TrimRight(config.Get("APP_URL", "http://localhost"), "/")
}

// UseRouting dispatches the rest of this test through the router.
func (s *EndToEndTestCase) UseRouting() *EndToEndTestCase {
	return s.UseDispatcher(RouterDispatcher{})
}

func (s *EndToEndTestCase) UseDispatcher(d Dispatcher) *EndToEndTestCase {
	s.dispatcher = d
	return s
}

// Dispatcher returns the dispatcher in effect: the one set by the test, the
// suite's DefinesDispatcher hook, or TESTBENCH_DISPATCHER.
func (s *EndToEndTestCase) Dispatcher() Dispatcher {
	if s.dispatcher != nil {
		return s.dispatcher
	}
	if h, ok := s.owner().(DefinesDispatcher); ok {
		if d := h.ApplicationDispatcher(); d != nil {
			return d
		}
	}
	return DispatcherFromName(strings.ToLower(config.Get("TESTBENCH_DISPATCHER", DispatcherStub)))
}

// ── Requests ─────────────────────────────────────────────────────────────────

// Request sends a simulated request. Per-call headers win over defaults.
func (s *EndToEndTestCase) Request(method, uri string, data map[string]any, query, headers map[string]string) *Response {
	s.T().Helper()
	merged := make(map[string]string, len(s.headers)+len(headers))
	for k, v := range s.headers {
		merged[k] = v
	}
	for k, v := range headers {
		merged[k] = v
	}

	req := testresponse.Request{
		Method:  strings.ToUpper(method),
		URI:     uri,
		Data:    data,
		Query:   query,
		Headers: merged,
	}
	resp, err := s.Dispatcher().Dispatch(s.App(), req, s.BaseURL())
	s.Require().NoError(err, req.Curl(s.BaseURL()))
	return resp
}

func (s *EndToEndTestCase) Get(uri string, headers ...map[string]string) *Response {
	return s.Request(http.MethodGet, uri, nil, nil, mergeHeaders(headers))
}

func (s *EndToEndTestCase) Post(uri string, data map[string]any, headers ...map[string]string) *Response {
	return s.Request(http.MethodPost, uri, data, nil, mergeHeaders(headers))
}

func (s *EndToEndTestCase) Put(uri string, data map[string]any, headers ...map[string]string) *Response {
	return s.Request(http.MethodPut, uri, data, nil, mergeHeaders(headers))
}

func (s *EndToEndTestCase) Patch(uri string, data map[string]any, headers ...map[string]string) *Response {
	return s.Request(http.MethodPatch, uri, data, nil, mergeHeaders(headers))
}

func (s *EndToEndTestCase) Delete(uri string, data map[string]any, headers ...map[string]string) *Response {
	return s.Request(http.MethodDelete, uri, data, nil, mergeHeaders(headers))
}

// JSON sends data with JSON Accept and Content-Type headers.
func (s *EndToEndTestCase) JSON(method, uri string, data map[string]any, headers ...map[string]string) *Response {
	h := mergeHeaders(append([]map[string]string{{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}}, headers...))
	return s.Request(method, uri, data, nil, h)
}

func (s *EndToEndTestCase) GetJSON(uri string, headers ...map[string]string) *Response {
	return s.JSON(http.MethodGet, uri, nil, headers...)
}

func (s *EndToEndTestCase) PostJSON(uri string, data map[string]any, headers ...map[string]string) *Response {
	return s.JSON(http.MethodPost, uri, data, headers...)
}

func mergeHeaders(hs []map[string]string) map[string]string {
	out := make(map[string]string)
	for _, h := range hs {
		for k, v := range h {
			out[k] = v
		}
	}
	return out
}

// ── Fake routes ──────────────────────────────────────────────────────────────

// FakeRoute registers h on the application router and switches this test to
// routed dispatch.
func (s *EndToEndTestCase) FakeRoute(method, pattern string, h http.Handler) {
	s.T().Helper()
	router, err := testbench.ResolveAs[*routing.Router](s.App(), "router")
	s.Require().NoError(err, "FakeRoute needs the framework router")
	router.Method(method, pattern, h)
	s.UseRouting()
}

// FakeResponse registers a route answering with a fixed response.
func (s *EndToEndTestCase) FakeResponse(method, pattern string, status int, headers http.Header, body string) {
	s.T().Helper()
	s.FakeRoute(method, pattern, httphelpers.HandlerWithResponse(status, headers, []byte(body)))
}

// RecordRoute registers h and returns a channel receiving every request it
// handles.
func (s *EndToEndTestCase) RecordRoute(method, pattern string, h http.Handler) <-chan httphelpers.HTTPRequestInfo {
	s.T().Helper()
	rh, requests := httphelpers.RecordingHandler(h)
	s.FakeRoute(method, pattern, rh)
	return requests
}

// ── Assertions ───────────────────────────────────────────────────────────────

func (s *EndToEndTestCase) AssertStatus(resp *Response, status int, msgAndArgs ...any) bool {
	s.T().Helper()
	return assertStatus(s.T(), resp, status, s.BaseURL(), msgAndArgs...)
}

func (s *EndToEndTestCase) AssertOk(resp *Response, msgAndArgs ...any) bool {
	s.T().Helper()
	return s.AssertStatus(resp, http.StatusOK, msgAndArgs...)
}

func (s *EndToEndTestCase) AssertCreated(resp *Response, msgAndArgs ...any) bool {
	s.T().Helper()
	return s.AssertStatus(resp, http.StatusCreated, msgAndArgs...)
}

func (s *EndToEndTestCase) AssertNoContent(resp *Response, msgAndArgs ...any) bool {
	s.T().Helper()
	return s.AssertStatus(resp, http.StatusNoContent, msgAndArgs...)
}

func (s *EndToEndTestCase) AssertNotFound(resp *Response, msgAndArgs ...any) bool {
	s.T().Helper()
	return s.AssertStatus(resp, http.StatusNotFound, msgAndArgs...)
}

func (s *EndToEndTestCase) AssertHeader(resp *Response, name, want string, msgAndArgs ...any) bool {
	s.T().Helper()
	return assertHeader(s.T(), resp, name, want, s.BaseURL(), msgAndArgs...)
}

// AssertJSON fails unless every key of want is present in the body with an
// equal value. Extra keys in the body are ignored.
func (s *EndToEndTestCase) AssertJSON(resp *Response, want map[string]any, msgAndArgs ...any) bool {
	s.T().Helper()
	return assertJSON(s.T(), resp, want, s.BaseURL(), msgAndArgs...)
}

// AssertJSONPath compares the value at path with want.
//
//	s.AssertJSONPath(resp, "ada", "data", "users", "0", "name")
func (s *EndToEndTestCase) AssertJSONPath(resp *Response, want any, path ...string) bool {
	s.T().Helper()
	return assertJSONPath(s.T(), resp, want, path, s.BaseURL())
}

func assertStatus(t assert.TestingT, resp *Response, status int, base string, msgAndArgs ...any) bool {
	if resp.Status() == status {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("Expected response status code [%d] but received %d.\nBody: %s\nReproduce: %s",
		status, resp.Status(), resp.Body(), resp.Request().Curl(base)), msgAndArgs...)
}

func assertHeader(t assert.TestingT, resp *Response, name, want, base string, msgAndArgs ...any) bool {
	got, ok := resp.Header(name)
	if ok && got == want {
		return true
	}
	if !ok {
		return assert.Fail(t, fmt.Sprintf("Header [%s] not present on response.\nReproduce: %s",
			name, resp.Request().Curl(base)), msgAndArgs...)
	}
	return assert.Fail(t, fmt.Sprintf("Header [%s] was found, but value [%s] does not match [%s].\nReproduce: %s",
		name, got, want, resp.Request().Curl(base)), msgAndArgs...)
}

func assertJSON(t assert.TestingT, resp *Response, want map[string]any, base string, msgAndArgs ...any) bool {
	got := resp.JSON()
	keys := make([]string, 0, len(want))
	for k := range want {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		raw, ok := got[k]
		if !ok || !ldvalue.CopyArbitraryValue(raw).Equal(ldvalue.CopyArbitraryValue(want[k])) {
			return assert.Fail(t, fmt.Sprintf("Unable to find JSON fragment %s within %s.\nReproduce: %s",
				ldvalue.CopyArbitraryValue(want).JSONString(), resp.Body(), resp.Request().Curl(base)), msgAndArgs...)
		}
	}
	return true
}

func assertJSONPath(t assert.TestingT, resp *Response, want any, path []string, base string) bool {
	got := resp.JSONPath(path...)
	expected := ldvalue.CopyArbitraryValue(want)
	if got.Equal(expected) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("JSON path [%s] is %s, expected %s.\nReproduce: %s",
		strings.Join(path, "."), got.JSONString(), expected.JSONString(), resp.Request().Curl(base)))
}
