package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-key", 5*time.Second)
}

func TestClientUnwrapsResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": {"uri": "viking://a"}}`))
	})

	v, err := c.Get(context.Background(), "/api/v1/fs/stat", nil)
	require.NoError(t, err)

	obj, ok := v.(*orderedmap.OrderedMap[string, any])
	require.True(t, ok)
	uri, _ := obj.Get("uri")
	assert.Equal(t, "viking://a", uri)
}

func TestClientPassesBodyThroughWithoutResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok"}`))
	})

	v, err := c.Get(context.Background(), "/api/v1/health", nil)
	require.NoError(t, err)

	obj, ok := v.(*orderedmap.OrderedMap[string, any])
	require.True(t, ok)
	status, _ := obj.Get("status")
	assert.Equal(t, "ok", status)
}

func TestClientErrorEnvelopeIn2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"code": "NOT_FOUND", "message": "no such uri"}}`))
	})

	_, err := c.Get(context.Background(), "/api/v1/fs/stat", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "no such uri", apiErr.Message)
	assert.Equal(t, "[NOT_FOUND] no such uri", apiErr.Error())
}

func TestClientHTTPErrorMessages(t *testing.T) {
	t.Run("error.message preferred", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"message": "bad uri"}}`))
		})
		_, err := c.Get(context.Background(), "/x", nil)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "bad uri", apiErr.Message)
	})

	t.Run("detail fallback", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail": "validation failed"}`))
		})
		_, err := c.Get(context.Background(), "/x", nil)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "validation failed", apiErr.Message)
	})

	t.Run("bare status fallback", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`not json`))
		})
		_, err := c.Get(context.Background(), "/x", nil)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "HTTP error 502", apiErr.Message)
	})
}

func TestClientEmptyResponses(t *testing.T) {
	for _, status := range []int{http.StatusNoContent, http.StatusAccepted} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		v, err := c.Delete(context.Background(), "/x", nil)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestClientSendsHeaders(t *testing.T) {
	var gotKey, gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"result": null}`))
	})

	_, err := c.Post(context.Background(), "/x", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClientOmitsEmptyAPIKey(t *testing.T) {
	var hasKey bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasKey = r.Header["X-Api-Key"]
		w.Write([]byte(`{"result": null}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	_, err := c.Get(context.Background(), "/x", nil)
	require.NoError(t, err)
	assert.False(t, hasKey)
}

func TestClientQueryAndBodyEncoding(t *testing.T) {
	var gotQuery url.Values
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&gotBody)
		}
		w.Write([]byte(`{"result": []}`))
	})

	_, err := c.Ls(context.Background(), "viking://a", LsOptions{Recursive: true, AbsLimit: 256, NodeLimit: 1000})
	require.NoError(t, err)
	assert.Equal(t, "viking://a", gotQuery.Get("uri"))
	assert.Equal(t, "true", gotQuery.Get("recursive"))
	assert.Equal(t, "256", gotQuery.Get("abs_limit"))

	_, err = c.Mv(context.Background(), "viking://a", "viking://b")
	require.NoError(t, err)
	assert.Equal(t, "viking://a", gotBody["from_uri"])
	assert.Equal(t, "viking://b", gotBody["to_uri"])
}

func TestClientBaseURLTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"result": null}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "", time.Second)
	_, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/health", gotPath)
}

func TestSessionPathEscapesID(t *testing.T) {
	assert.Equal(t, "/api/v1/sessions/a%2Fb", sessionPath("a/b", ""))
	assert.Equal(t, "/api/v1/sessions/s1/commit", sessionPath("s1", "commit"))
}

func TestClientAddResourceBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"result": null}`))
	})

	t.Run("defaults send null target and timeout", func(t *testing.T) {
		_, err := c.AddResource(context.Background(), "./notes.md", AddResourceOptions{})
		require.NoError(t, err)
		assert.Equal(t, "/api/v1/resources", gotPath)
		assert.Equal(t, "./notes.md", gotBody["path"])
		assert.Nil(t, gotBody["target"])
		assert.Nil(t, gotBody["timeout"])
		assert.Equal(t, "", gotBody["reason"])
		assert.Equal(t, false, gotBody["wait"])
	})

	t.Run("full options", func(t *testing.T) {
		timeout := 30.0
		_, err := c.AddResource(context.Background(), "https://example.test/doc", AddResourceOptions{
			Target:      "viking://resources/docs",
			Reason:      "reference",
			Instruction: "summarize",
			Wait:        true,
			Timeout:     &timeout,
		})
		require.NoError(t, err)
		assert.Equal(t, "viking://resources/docs", gotBody["target"])
		assert.Equal(t, "reference", gotBody["reason"])
		assert.Equal(t, "summarize", gotBody["instruction"])
		assert.Equal(t, true, gotBody["wait"])
		assert.Equal(t, 30.0, gotBody["timeout"])
	})
}

func TestClientAddSkillBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"result": null}`))
	})

	_, err := c.AddSkill(context.Background(), "./skills/review", true, nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/skills", gotPath)
	assert.Equal(t, "./skills/review", gotBody["data"])
	assert.Equal(t, true, gotBody["wait"])
	assert.Nil(t, gotBody["timeout"])
}

func TestClientPackTransferBodies(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"result": null}`))
	})

	t.Run("export", func(t *testing.T) {
		_, err := c.ExportPack(context.Background(), "viking://resources/a", "./a.ovpack")
		require.NoError(t, err)
		assert.Equal(t, "/api/v1/pack/export", gotPath)
		assert.Equal(t, "viking://resources/a", gotBody["uri"])
		assert.Equal(t, "./a.ovpack", gotBody["to"])
	})

	t.Run("import", func(t *testing.T) {
		_, err := c.ImportPack(context.Background(), "./a.ovpack", "viking://resources", true, false)
		require.NoError(t, err)
		assert.Equal(t, "/api/v1/pack/import", gotPath)
		assert.Equal(t, "./a.ovpack", gotBody["file_path"])
		assert.Equal(t, "viking://resources", gotBody["parent"])
		assert.Equal(t, true, gotBody["force"])
		assert.Equal(t, false, gotBody["vectorize"])
	})
}

func TestClientThresholdOnlyWhenSet(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"result": []}`))
	})

	_, err := c.Find(context.Background(), "q", SearchOptions{URI: "viking://", Limit: 10})
	require.NoError(t, err)
	_, present := gotBody["threshold"]
	assert.False(t, present)

	th := 0.7
	_, err = c.Find(context.Background(), "q", SearchOptions{URI: "viking://", Limit: 10, Threshold: &th})
	require.NoError(t, err)
	assert.Equal(t, 0.7, gotBody["threshold"])
}
