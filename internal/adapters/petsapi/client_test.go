package petsapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption-web/internal/adapters/petsapi"
	"pet-adoption-web/internal/adapters/petsapi/petsapitest"
	"pet-adoption-web/internal/domain/pets"
	"pet-adoption-web/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*petsapi.Client, *petsapitest.Server) {
	t.Helper()

	ts, stub := petsapitest.Start()
	t.Cleanup(ts.Close)

	c, err := petsapi.NewClient(petsapi.Config{BaseURL: ts.URL})
	require.NoError(t, err)
	return c, stub
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := petsapi.NewClient(petsapi.Config{})
	assert.ErrorIs(t, err, petsapi.ErrNotConfigured)

	_, err = petsapi.NewClient(petsapi.Config{BaseURL: "ftp://example.com"})
	assert.Error(t, err)
}

func TestClient_CRUDRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newClient(t)

	created, err := c.Create(ctx, pets.Draft{Name: "Rex", Species: pets.SpeciesDog, Age: 2, Personality: pets.PersonalityFriendly})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, pets.MoodHappy, created.Mood)
	assert.False(t, created.Adopted)
	assert.Nil(t, created.AdoptionDate)

	got, err := c.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)

	updated, err := c.Update(ctx, created.ID, pets.Draft{Name: "Rexy", Species: pets.SpeciesCat, Age: 5, Personality: pets.PersonalityCalm})
	require.NoError(t, err)
	assert.Equal(t, "Rexy", updated.Name)
	assert.Equal(t, pets.SpeciesCat, updated.Species)

	adopted, err := c.Adopt(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, adopted.Adopted)
	require.NotNil(t, adopted.AdoptionDate)
	assert.True(t, adopted.Consistent())

	all, err := c.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Adopted)

	require.NoError(t, c.Delete(ctx, created.ID))

	all, err = c.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestClient_NotFoundMapsToDomainError(t *testing.T) {
	ctx := context.Background()
	c, _ := newClient(t)

	_, err := c.GetByID(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, pets.ErrNotFound)

	te, ok := httpclient.AsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
	assert.Contains(t, te.Body, "pet not found")

	assert.ErrorIs(t, c.Delete(ctx, "missing"), pets.ErrNotFound)
	_, err = c.Adopt(ctx, "missing")
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestClient_ServerErrorCarriesStatusAndBody(t *testing.T) {
	ctx := context.Background()
	c, stub := newClient(t)

	stub.FailNext(petsapitest.OpList, http.StatusServiceUnavailable)

	_, err := c.ListAll(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, pets.ErrNotFound)

	te, ok := httpclient.AsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, te.StatusCode)
	assert.Contains(t, te.Body, "injected failure")

	// Sin reintentos: una sola llamada llegó al backend.
	assert.Equal(t, 1, stub.Calls(petsapitest.OpList))
}

func TestClient_NetworkErrorIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, err := petsapi.NewClient(petsapi.Config{BaseURL: url})
	require.NoError(t, err)

	_, err = c.ListAll(context.Background())
	te, ok := httpclient.AsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, 0, te.StatusCode)
}

func TestClient_ListAllToleratesUnreadableDate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Rex","species":"Dog","age":2,"personality":"Friendly","mood":"Happy","adopted":false},
			{"id":2,"name":"Mia","species":"Cat","age":5,"personality":"Shy","mood":"Sad","adopted":true,"adoption_date":"01/13/2024 ???"}
		]`))
	}))
	defer ts.Close()

	c, err := petsapi.NewClient(petsapi.Config{BaseURL: ts.URL})
	require.NoError(t, err)

	all, err := c.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Rex", all[0].Name)
	assert.Nil(t, all[1].AdoptionDate)
	assert.Equal(t, "01/13/2024 ???", all[1].AdoptionDateLabel())
}

func TestClient_SendsDraftOnlyAndJSONHeaders(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotCT     string
		gotBody   string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotCT = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"_id":"abc","name":"Mia","species":"Cat","age":3,"personality":"Shy","mood":"Sad","adopted":false}`))
	}))
	defer ts.Close()

	c, err := petsapi.NewClient(petsapi.Config{BaseURL: ts.URL + "/"})
	require.NoError(t, err)

	p, err := c.Update(context.Background(), "abc", pets.Draft{Name: "Mia", Species: pets.SpeciesCat, Age: 3, Personality: pets.PersonalityShy})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/pets/abc", gotPath)
	assert.Equal(t, "application/json", gotCT)
	assert.JSONEq(t, `{"name":"Mia","species":"Cat","age":3,"personality":"Shy"}`, gotBody)
	assert.Equal(t, pets.ID("abc"), p.ID)
}

func TestClient_AdoptSendsNoBody(t *testing.T) {
	var gotMethod, gotPath string
	var gotLen int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotLen = r.Method, r.URL.Path, r.ContentLength
		_, _ = w.Write([]byte(`{"id":2,"name":"Mia","adopted":true,"adoption_date":"2024-01-01"}`))
	}))
	defer ts.Close()

	c, err := petsapi.NewClient(petsapi.Config{BaseURL: ts.URL})
	require.NoError(t, err)

	p, err := c.Adopt(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/pets/2/adopt", gotPath)
	assert.Zero(t, gotLen)
	assert.Equal(t, pets.ID("2"), p.ID)
	assert.Equal(t, "January 1, 2024", p.AdoptionDateLabel())
}

func TestClient_DeleteAcceptsEmptyBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c, err := petsapi.NewClient(petsapi.Config{BaseURL: ts.URL})
	require.NoError(t, err)
	assert.NoError(t, c.Delete(context.Background(), "1"))
}

func TestClient_ContextCanceled(t *testing.T) {
	c, _ := newClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListAll(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
