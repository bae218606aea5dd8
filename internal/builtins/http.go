package builtins

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerHTTP wires a minimal blocking HTTP client surface (http_get/
// http_post), named only by intent in spec.md §6's "host collaborators"
// list. Grounded on the teacher's builtins_http.go, which wraps net/http
// the same way and returns a Result-wrapped response Object.
func registerHTTP(r *Registry) {
	client := &http.Client{Timeout: 30 * time.Second}

	r.register("http_get", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		url, err := wantString("http_get", args, 0)
		if err != nil {
			return nil, err
		}
		resp, herr := client.Get(url)
		if herr != nil {
			return value.Result("Err", value.Str(herr.Error())), nil
		}
		return httpResultObject(resp)
	})

	r.register("http_post", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		url, err := wantString("http_post", args, 0)
		if err != nil {
			return nil, err
		}
		body, err := wantString("http_post", args, 1)
		if err != nil {
			return nil, err
		}
		contentType := "application/octet-stream"
		if len(args) > 2 {
			if ct, cerr := wantString("http_post", args, 2); cerr == nil {
				contentType = ct
			}
		}
		resp, herr := client.Post(url, contentType, strings.NewReader(body))
		if herr != nil {
			return value.Result("Err", value.Str(herr.Error())), nil
		}
		return httpResultObject(resp)
	})
}

func httpResultObject(resp *http.Response) (value.Value, *diagnostics.Error) {
	defer resp.Body.Close()
	data, rerr := io.ReadAll(resp.Body)
	if rerr != nil {
		return value.Result("Err", value.Str(rerr.Error())), nil
	}
	obj := value.NewObject().
		Set("status", value.Int(int64(resp.StatusCode))).
		Set("body", value.Str(string(data)))
	return value.Result("Ok", obj), nil
}
