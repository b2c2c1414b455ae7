package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.pdb":
			w.Write([]byte("ATOM      1  N   ALA A   1       0.000   0.000   0.000\n"))
		case "/sorry.pdb":
			w.Write([]byte("Sorry, the file you requested was not found"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	body, err := Get(context.Background(), srv.URL+"/ok.pdb")
	require.NoError(t, err)
	assert.Contains(t, string(body), "ALA")

	_, err = Get(context.Background(), srv.URL+"/missing.pdb")
	assert.Error(t, err)

	_, err = Get(context.Background(), srv.URL+"/sorry.pdb")
	assert.Error(t, err)
}

func TestGetCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Get(ctx, srv.URL)
	assert.Error(t, err)
}
