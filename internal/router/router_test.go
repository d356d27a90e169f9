package router_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"pet-adoption-web/internal/adapters/petsapi"
	"pet-adoption-web/internal/adapters/petsapi/petsapitest"
	"pet-adoption-web/internal/page"
	"pet-adoption-web/internal/platform/metrics"
	"pet-adoption-web/internal/router"
	"pet-adoption-web/internal/web"

	"github.com/prometheus/client_golang/prometheus"
)

func newServer(t *testing.T) (*httptest.Server, *petsapitest.Server) {
	t.Helper()

	backend, stub := petsapitest.Start()
	t.Cleanup(backend.Close)

	reg := prometheus.NewRegistry()
	rec := metrics.NewCollector(reg)

	api, err := petsapi.NewClient(petsapi.Config{BaseURL: backend.URL, Metrics: rec})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	sessions := page.NewSessions(time.Hour, func(effects page.Effects) *page.Controller {
		return page.NewController(page.Options{
			API:     api,
			Effects: effects,
			After:   func(time.Duration, func()) {},
			Metrics: rec,
		})
	})

	h := router.NewRouter(router.Options{
		Web:      web.New(web.Options{Sessions: sessions}),
		Gatherer: reg,
	})
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, stub
}

func TestHTTP_EndToEnd_AdoptionLifecycle(t *testing.T) {
	ts, stub := newServer(t)

	jar, _ := cookiejar.New(nil)
	c := &http.Client{Jar: jar}

	// 1) Página vacía
	{
		st, body := doReq(t, c, http.MethodGet, ts.URL+"/", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 home, got %d", st)
		}
		if !strings.Contains(body, "No pets found") {
			t.Fatalf("expected empty state, body=%s", body)
		}
	}

	// 2) Alta
	doReq(t, c, http.MethodPost, ts.URL+"/form/add", nil)
	{
		st, body := doReq(t, c, http.MethodPost, ts.URL+"/form/submit", url.Values{
			"name": {"Milo"}, "species": {"Cat"}, "age": {"2"}, "personality": {"Calm"},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 after submit, got %d", st)
		}
		if !strings.Contains(body, "Milo has been added!") {
			t.Fatalf("expected add toast, body=%s", body)
		}
	}

	items, err := stub.Service().List(t.Context())
	if err != nil || len(items) != 1 {
		t.Fatalf("expected 1 pet in backend, got %d err=%v", len(items), err)
	}
	petID := items[0].ID.String()

	// 3) Adopción
	{
		_, body := doReq(t, c, http.MethodPost, ts.URL+"/pets/"+petID+"/adopt", nil)
		if !strings.Contains(body, "Congratulations on your new adoption!") {
			t.Fatalf("expected adopt toast, body=%s", body)
		}
		if !strings.Contains(body, "Adopted on:") {
			t.Fatalf("expected adoption date, body=%s", body)
		}
	}

	// 4) Borrado con confirmación
	doReq(t, c, http.MethodPost, ts.URL+"/pets/"+petID+"/delete", nil)
	{
		_, body := doReq(t, c, http.MethodPost, ts.URL+"/confirm/delete", nil)
		if !strings.Contains(body, "Pet has been removed from the adoption center.") {
			t.Fatalf("expected delete toast, body=%s", body)
		}
	}
	if stub.Calls(petsapitest.OpDelete) != 1 {
		t.Fatalf("expected 1 delete call, got %d", stub.Calls(petsapitest.OpDelete))
	}

	// 5) Métricas
	{
		st, body := doReq(t, c, http.MethodGet, ts.URL+"/metrics", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 metrics, got %d", st)
		}
		for _, want := range []string{
			`petsweb_api_calls_total{op="create",outcome="ok"} 1`,
			`petsweb_api_calls_total{op="adopt",outcome="ok"} 1`,
			`petsweb_ui_actions_total{action="delete",outcome="ok"} 1`,
		} {
			if !strings.Contains(body, want) {
				t.Fatalf("expected %q in metrics, body=%s", want, body)
			}
		}
	}
}

func TestHTTP_Health(t *testing.T) {
	ts, _ := newServer(t)

	st, body := doReq(t, http.DefaultClient, http.MethodGet, ts.URL+"/health", nil)
	if st != http.StatusOK || body != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", st, body)
	}
}

func TestHTTP_UnknownRouteIs404(t *testing.T) {
	ts, _ := newServer(t)

	st, _ := doReq(t, http.DefaultClient, http.MethodGet, ts.URL+"/nope", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}
}

func doReq(t *testing.T, c *http.Client, method, target string, form url.Values) (int, string) {
	t.Helper()

	var rdr io.Reader
	if form != nil {
		rdr = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, target, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	res, err := c.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}
