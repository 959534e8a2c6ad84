package api_test

import (
	"context"
	"encoding/json"
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/api"
	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/trie"
	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/wordset"
)

func do(t *testing.T, client *http.Client, method, target string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func put(t *testing.T, client *http.Client, target string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestAPI(t *testing.T) {
	set := wordset.New()
	server := api.NewServer("127.0.0.1:0", set)
	testServer := httptest.NewServer(server.Handler())
	defer testServer.Close()

	client := testServer.Client()
	wordURL := func(w string) string {
		return fmt.Sprintf("%s/words/%s", testServer.URL, url.PathEscape(w))
	}

	t.Run("Insert words", func(t *testing.T) {
		for _, w := range []string{"dog", "dot", "do", "héllo"} {
			resp := do(t, client, http.MethodPut, wordURL(w))
			assert.Equal(t, http.StatusCreated, resp.StatusCode, w)

			body := decode[api.WordResponse](t, resp)
			assert.Equal(t, w, body.Word)
			assert.True(t, body.Added)
		}
		assert.Equal(t, 4, set.Len())

		resp := do(t, client, http.MethodPut, wordURL("dog"))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, decode[api.WordResponse](t, resp).Added)
	})

	t.Run("Reject invalid UTF-8", func(t *testing.T) {
		for _, escaped := range []string{"a%FF", "%80b", "d%E6%97"} {
			resp := do(t, client, http.MethodPut, testServer.URL+"/words/"+escaped)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, escaped)
			assert.Contains(t, decode[api.ErrorResponse](t, resp).Error, "UTF-8")

			resp = do(t, client, http.MethodGet, testServer.URL+"/words/"+escaped)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode, escaped)
		}
		assert.Equal(t, 4, set.Len())
		assert.False(t, set.Contains("a\uFFFD"))
	})

	t.Run("Get word", func(t *testing.T) {
		resp := do(t, client, http.MethodGet, wordURL("do"))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, decode[api.WordResponse](t, resp).Found)

		resp = do(t, client, http.MethodGet, wordURL("héllo"))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, client, http.MethodGet, wordURL("d"))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, decode[api.ErrorResponse](t, resp).Error, "not found")
	})

	t.Run("List words", func(t *testing.T) {
		resp := do(t, client, http.MethodGet, testServer.URL+"/words")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[api.WordsResponse](t, resp)
		assert.Equal(t, []string{"do", "dog", "dot", "héllo"}, body.Words)

		resp = do(t, client, http.MethodGet, testServer.URL+"/words?prefix=dog")
		body = decode[api.WordsResponse](t, resp)
		assert.Equal(t, "dog", body.Prefix)
		assert.Equal(t, []string{"dog"}, body.Words)

		resp = do(t, client, http.MethodGet, testServer.URL+"/words?prefix=zz")
		body = decode[api.WordsResponse](t, resp)
		assert.NotNil(t, body.Words)
		assert.Empty(t, body.Words)
	})

	t.Run("Stats", func(t *testing.T) {
		resp := do(t, client, http.MethodGet, testServer.URL+"/stats")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		stats := decode[api.StatsResponse](t, resp)
		assert.Equal(t, api.StatsResponse{Words: 4, Nodes: 4 + 5, Roots: 2}, stats)
	})

	t.Run("Snapshot", func(t *testing.T) {
		resp := do(t, client, http.MethodGet, testServer.URL+"/snapshot/d")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/octet-stream", resp.Header.Get("Content-Type"))

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		got, err := trie.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, "d[o*[g* t*]]", got.String())

		resp = do(t, client, http.MethodGet, testServer.URL+"/snapshot/q")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = do(t, client, http.MethodGet, testServer.URL+"/snapshot/do")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Delete word", func(t *testing.T) {
		resp := do(t, client, http.MethodDelete, wordURL("dog"))
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = do(t, client, http.MethodDelete, wordURL("dog"))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		assert.False(t, set.Contains("dog"))
		assert.True(t, set.Contains("dot"))
		assert.Equal(t, 3, set.Len())
	})
}

func TestAPI_Restore(t *testing.T) {
	source := wordset.New()
	_, err := source.InsertAll("dog", "dot", "do", "cat")
	require.NoError(t, err)
	sourceServer := httptest.NewServer(api.NewServer("127.0.0.1:0", source).Handler())
	defer sourceServer.Close()

	target := wordset.New()
	_, err = target.InsertAll("dig", "zoo")
	require.NoError(t, err)
	targetServer := httptest.NewServer(api.NewServer("127.0.0.1:0", target).Handler())
	defer targetServer.Close()

	resp := do(t, sourceServer.Client(), http.MethodGet, sourceServer.URL+"/snapshot/d")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snapshot, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	client := targetServer.Client()

	t.Run("Replaces root", func(t *testing.T) {
		resp := put(t, client, targetServer.URL+"/snapshot/d", snapshot)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		stats := decode[api.StatsResponse](t, resp)
		assert.Equal(t, api.StatsResponse{Words: 4, Nodes: 4 + 3, Roots: 2}, stats)

		assert.Equal(t, []string{"do", "dog", "dot", "zoo"}, target.Words())
		assert.False(t, target.Contains("dig"))
	})

	t.Run("Rejects mismatched root", func(t *testing.T) {
		resp := put(t, client, targetServer.URL+"/snapshot/z", snapshot)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decode[api.ErrorResponse](t, resp).Error, "rooted at")
	})

	t.Run("Rejects corrupt body", func(t *testing.T) {
		for name, body := range map[string][]byte{
			"empty":     nil,
			"truncated": snapshot[:len(snapshot)-1],
			"trailing":  append(bytes.Clone(snapshot), 0),
		} {
			resp := put(t, client, targetServer.URL+"/snapshot/d", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, name)
			assert.Contains(t, decode[api.ErrorResponse](t, resp).Error, "corrupt", name)
		}
	})

	t.Run("Rejects bad root", func(t *testing.T) {
		resp := put(t, client, targetServer.URL+"/snapshot/do", snapshot)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	assert.Equal(t, 4, target.Len())
	assert.Equal(t, []string{"do", "dog", "dot", "zoo"}, target.Words())
}

func TestServer_StartShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	set := wordset.New()
	_, err = set.Insert("ping")
	require.NoError(t, err)
	server := api.NewServer(addr, set)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/words/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
