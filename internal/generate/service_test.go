package generate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ytget/qr-generator/internal/generate"
	"github.com/ytget/qr-generator/internal/model"
)

func newService(t *testing.T, handler http.HandlerFunc) (*generate.HTTPService, *int32) {
	t.Helper()

	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	svc, err := generate.NewHTTPService(ts.URL, ts.Client(), nil)
	require.NoError(t, err)
	return svc, &hits
}

func TestHTTPServiceGenerateSendsPayload(t *testing.T) {
	t.Parallel()

	var (
		body        []byte
		accept      string
		contentType string
	)
	svc, hits := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		accept = r.Header.Get("Accept")
		contentType = r.Header.Get("Content-Type")

		var err error
		body, err = io.ReadAll(r.Body)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"caption":"AA==","no_caption":"AQ=="}`))
	})

	values := model.FormValues{"url": "https://example.com/?a=1&b=<2>", "text": ""}
	artifact, err := svc.Generate(context.Background(), model.KindLink, values)
	require.NoError(t, err)

	require.Equal(t, int32(1), atomic.LoadInt32(hits))
	require.Equal(t, "application/json, text/plain, */*", accept)
	require.Equal(t, "application/json", contentType)
	require.JSONEq(t, `{"url":"https://example.com/?a=1&b=<2>","text":"","type":"link-qr"}`, string(body))
	require.Contains(t, string(body), "&b=<2>", "HTML escaping must be off")

	require.Equal(t, "AA==", artifact.Caption)
	require.Equal(t, "AQ==", artifact.NoCaption)
	require.Equal(t, model.KindLink, artifact.Kind)
	require.NotEmpty(t, artifact.ID)
	require.False(t, artifact.ReceivedAt.IsZero())

	_, hasType := values["type"]
	require.False(t, hasType, "caller values must not be modified")
}

func TestHTTPServiceGenerateResponseShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		caption   string
		noCaption string
	}{
		{name: "pair", body: `{"caption":"QQ==","no_caption":"Qg=="}`, caption: "QQ==", noCaption: "Qg=="},
		{name: "json string", body: `"QQ=="`, caption: "QQ==", noCaption: "QQ=="},
		{name: "bare text", body: "QQ==\n", caption: "QQ==", noCaption: "QQ=="},
		{name: "caption only", body: `{"caption":"QQ=="}`, caption: "QQ==", noCaption: "QQ=="},
		{name: "no_caption only", body: `{"no_caption":"Qg=="}`, caption: "Qg==", noCaption: "Qg=="},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})

			artifact, err := svc.Generate(context.Background(), model.KindWifi, model.FormValues{"ssid": "home", "password": "secret"})
			require.NoError(t, err)
			require.Equal(t, tc.caption, artifact.Caption)
			require.Equal(t, tc.noCaption, artifact.NoCaption)
		})
	}
}

func TestHTTPServiceGenerateEmptyBody(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := svc.Generate(context.Background(), model.KindContact, model.FormValues{})
	require.ErrorIs(t, err, generate.ErrEmptyResponse)
}

func TestHTTPServiceGenerateBackendError(t *testing.T) {
	t.Parallel()

	svc, hits := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Invalid phone number"))
	})

	_, err := svc.Generate(context.Background(), model.KindContact, model.FormValues{"phone": "1"})
	require.Error(t, err)

	var te *generate.TransportError
	require.True(t, errors.As(err, &te))
	require.Equal(t, http.StatusBadRequest, te.Status)
	require.Equal(t, "Invalid phone number", te.UserMessage())
	require.Equal(t, "Invalid phone number", generate.UserMessage(err))
	require.Equal(t, int32(1), atomic.LoadInt32(hits), "no retries")
}

func TestHTTPServiceGenerateErrorBodyIsVerbatim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"surrounding whitespace kept", "  Invalid SSID\n", "  Invalid SSID\n"},
		{"whitespace only", " \n\t", http.StatusText(http.StatusBadRequest)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := svc.Generate(context.Background(), model.KindWifi, model.FormValues{})
			require.Equal(t, tc.want, generate.UserMessage(err))
		})
	}
}

func TestHTTPServiceGenerateOversizedBody(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write(bytes.Repeat([]byte("A"), 8<<20+1))
	})

	_, err := svc.Generate(context.Background(), model.KindLink, model.FormValues{})
	require.ErrorIs(t, err, generate.ErrResponseTooLarge)
}

func TestHTTPServiceGenerateHTMLErrorIsStripped(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html><body><h1>Server exploded</h1></body></html>"))
	})

	_, err := svc.Generate(context.Background(), model.KindLink, model.FormValues{})
	require.Equal(t, "Server exploded", generate.UserMessage(err))
}

func TestHTTPServiceGenerateErrorWithoutBody(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := svc.Generate(context.Background(), model.KindLink, model.FormValues{})
	require.Equal(t, http.StatusText(http.StatusServiceUnavailable), generate.UserMessage(err))
}

func TestHTTPServiceGenerateTransportFailure(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	svc, err := generate.NewHTTPService(url, nil, nil)
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), model.KindLink, model.FormValues{})
	var te *generate.TransportError
	require.True(t, errors.As(err, &te))
	require.Zero(t, te.Status)
	require.NotNil(t, te.Unwrap())
}

func TestHTTPServiceGenerateCanceledContext(t *testing.T) {
	t.Parallel()

	svc, hits := newService(t, func(w http.ResponseWriter, r *http.Request) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Generate(ctx, model.KindLink, model.FormValues{})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, atomic.LoadInt32(hits))
}

func TestNewHTTPServiceValidatesBaseURL(t *testing.T) {
	t.Parallel()

	_, err := generate.NewHTTPService("  ", nil, nil)
	require.Error(t, err)

	_, err = generate.NewHTTPService("localhost", nil, nil)
	require.Error(t, err)

	svc, err := generate.NewHTTPService("http://localhost:5000/api", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:5000/api/generate", svc.Endpoint())
}

func TestStaticGenerator(t *testing.T) {
	t.Parallel()

	gen := &generate.StaticGenerator{Artifact: model.Artifact{Caption: "AA==", NoCaption: "AQ=="}}
	values := model.FormValues{"ssid": "home"}

	artifact, err := gen.Generate(context.Background(), model.KindWifi, values)
	require.NoError(t, err)
	require.Equal(t, model.KindWifi, artifact.Kind)
	require.NotEmpty(t, artifact.ID)

	values["ssid"] = "changed"
	calls := gen.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "home", calls[0]["ssid"])

	raw, err := json.Marshal(calls[0])
	require.NoError(t, err)
	require.JSONEq(t, `{"ssid":"home"}`, string(raw))
}
