package testcase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/km-arc/go-laravel-testbench/framework/routing"
	"github.com/km-arc/go-laravel-testbench/testbench"
	"github.com/km-arc/go-laravel-testbench/testbench/testresponse"
)

// Dispatcher turns a simulated request into a Response.
type Dispatcher interface {
	Dispatch(app *testbench.TestApplication, req testresponse.Request, baseURL string) (*testresponse.Response, error)
}

// DefinesDispatcher lets a suite choose its Dispatcher.
type DefinesDispatcher interface {
	ApplicationDispatcher() Dispatcher
}

// Dispatcher names accepted by TESTBENCH_DISPATCHER.
const (
	DispatcherStub   = "stub"
	DispatcherRouter = "router"
)

// StubDispatcher answers every request with 200 and an empty body without
// routing it anywhere. It is the default: requests are echoed on the
// Response but no handler runs. Use RouterDispatcher to exercise routes.
type StubDispatcher struct{}

func (StubDispatcher) Dispatch(_ *testbench.TestApplication, req testresponse.Request, _ string) (*testresponse.Response, error) {
	return testresponse.New(http.StatusOK, map[string][]string{}, "", req), nil
}

// RouterDispatcher serves the request through the "router" binding with an
// httptest recorder. Data is sent as a JSON body, except for GET and HEAD
// where it is dropped.
type RouterDispatcher struct{}

func (RouterDispatcher) Dispatch(app *testbench.TestApplication, req testresponse.Request, baseURL string) (*testresponse.Response, error) {
	router, err := testbench.ResolveAs[*routing.Router](app, "router")
	if err != nil {
		return nil, fmt.Errorf("router dispatch: %w", err)
	}

	var body io.Reader
	jsonBody := len(req.Data) > 0 && req.Method != http.MethodGet && req.Method != http.MethodHead
	if jsonBody {
		raw, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("router dispatch: encoding data: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq := httptest.NewRequest(req.Method, req.URL(baseURL), body)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if jsonBody && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httpReq)

	res := rec.Result()
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("router dispatch: reading body: %w", err)
	}
	return testresponse.FromHTTP(res.StatusCode, res.Header, raw, req), nil
}

// DispatcherFromName maps TESTBENCH_DISPATCHER to a Dispatcher.
func DispatcherFromName(name string) Dispatcher {
	if name == DispatcherRouter {
		return RouterDispatcher{}
	}
	return StubDispatcher{}
}
