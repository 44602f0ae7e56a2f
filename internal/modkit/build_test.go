package modkit

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"dashkit/internal/modkit/httpkit"
	phttp "dashkit/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()
	b := Build()
	assert.Empty(t, b.Name)
	assert.Empty(t, b.Prefix)
	assert.Nil(t, b.Ports)
	assert.Empty(t, b.Mw)
	assert.NotPanics(t, func() { b.Register(nil) })
}

func TestBuild_OptionsAndCopySemantics(t *testing.T) {
	t.Parallel()
	fnPtr := func(f func(http.Handler) http.Handler) uintptr { return reflect.ValueOf(f).Pointer() }

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	mid := []func(http.Handler) http.Handler{mwA, mwB}

	type ports struct{ X int }
	regs := 0
	b := Build(
		WithName("dummies"),
		WithPrefix("/dummy"),
		WithMiddlewares(mid...),
		WithPorts(ports{X: 7}),
		WithRegister(func(httpkit.Router) { regs++ }),
	)

	assert.Equal(t, "dummies", b.Name)
	assert.Equal(t, "/dummy", b.Prefix)
	assert.Equal(t, ports{X: 7}, b.Ports)
	require.Len(t, b.Mw, 2)

	mid[0] = func(next http.Handler) http.Handler { return next }
	assert.Equal(t, fnPtr(mwA), fnPtr(b.Mw[0]), "Built.Mw must not alias the caller slice")

	b.Register(nil)
	assert.Equal(t, 1, regs)
}

func TestBuilt_MountAppliesPrefixMiddlewareAndExtraRoutes(t *testing.T) {
	t.Parallel()
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "dummies")
			next.ServeHTTP(w, r)
		})
	}
	b := Build(
		WithPrefix("dummy/"),
		WithMiddlewares(tag),
		WithRegister(func(r httpkit.Router) {
			r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
		}),
	)

	mux := chi.NewRouter()
	b.Mount(phttp.AdaptChi(mux), func(r httpkit.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})

	for path, want := range map[string]int{"/dummy": 200, "/dummy/extra": 202} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
		assert.Equal(t, "dummies", rec.Header().Get("X-Module"), path)
	}
}

func TestDeps_LoggerFallsBackToNamed(t *testing.T) {
	t.Parallel()
	assert.NotNil(t, Deps{}.Logger("dummies"))
}

func TestBuilt_MountWithoutPrefixUsesRoot(t *testing.T) {
	t.Parallel()
	b := Build(WithName("meta"))

	mux := chi.NewRouter()
	b.Mount(phttp.AdaptChi(mux), func(r httpkit.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
