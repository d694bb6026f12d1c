package editor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeAPI is a minimal stand-in for the content API, recording writes and
// serving the envelopes the real handlers produce.
type fakeAPI struct {
	mux    *http.ServeMux
	saved  []map[string]any
	tokens string
}

func newFakeAPI(token string) *fakeAPI {
	f := &fakeAPI{mux: http.NewServeMux(), tokens: token}

	f.mux.HandleFunc("GET /v1/locales", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]string{{"language": "en"}, {"language": "ru"}})
	})
	f.mux.HandleFunc("GET /v1/records/member", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []RecordSummary{
			{ID: "m1", Name: "Иванов", Description: "Капитан", Locale: "ru"},
		})
	})
	f.mux.HandleFunc("GET /v1/records/project", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []RecordSummary{})
	})
	f.mux.HandleFunc("POST /v1/records", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["token"] != f.tokens {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			return
		}
		f.saved = append(f.saved, body)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Record created"})
	})
	f.mux.HandleFunc("DELETE /v1/records", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Record deleted"})
	})

	return f
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// startRuntime wires a runtime to the fake API and returns it with a channel
// of state snapshots.
func startRuntime(t *testing.T, api *fakeAPI) (*Runtime, chan State) {
	t.Helper()
	srv := httptest.NewServer(api.mux)
	t.Cleanup(srv.Close)

	states := make(chan State, 128)
	rt := NewRuntime(NewClient(srv.URL), func(s State) { states <- s })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	rt.Start(ctx)
	return rt, states
}

// waitFor drains snapshots until one satisfies the predicate.
func waitFor(t *testing.T, states chan State, what string, pred func(State) bool) State {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-states:
			if pred(s) {
				return s
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
		}
	}
}

func TestRuntimeSubmitRoundTrip(t *testing.T) {
	api := newFakeAPI("secret")
	rt, states := startRuntime(t, api)

	rt.Dispatch(SelectSection{Section: SectionMember})
	waitFor(t, states, "reference data", func(s State) bool {
		return len(s.Locales) == 2 && len(s.Records) == 1
	})

	rt.Dispatch(SetField{Field: "token", Value: "secret"})
	rt.Dispatch(SetField{Field: "name", Value: "Петров"})
	rt.Dispatch(SetField{Field: "description", Value: "Боцман"})
	rt.Dispatch(SetField{Field: "locale", Value: "ru"})
	rt.Dispatch(Submit{})

	final := waitFor(t, states, "submit confirmation", func(s State) bool {
		return s.Message == "Record created"
	})
	if final.Loading || final.Name != "" {
		t.Fatalf("form not reset after save: %+v", final)
	}
	if len(api.saved) != 1 || api.saved[0]["name"] != "Петров" {
		t.Fatalf("server saw %#v", api.saved)
	}
}

func TestRuntimeSurfacesServerError(t *testing.T) {
	api := newFakeAPI("secret")
	rt, states := startRuntime(t, api)

	rt.Dispatch(SelectSection{Section: SectionMember})
	rt.Dispatch(SetField{Field: "token", Value: "wrong"})
	rt.Dispatch(SetField{Field: "name", Value: "Петров"})
	rt.Dispatch(Submit{})

	final := waitFor(t, states, "error message", func(s State) bool {
		return s.MessageIsError
	})
	if final.Message != "Invalid token" {
		t.Fatalf("message = %q, want the server envelope verbatim", final.Message)
	}
	if final.Name != "Петров" {
		t.Fatal("draft must survive a rejected submit")
	}
	if len(api.saved) != 0 {
		t.Fatal("rejected write must not persist")
	}
}

func TestRuntimeAttachEncodesBeforeSubmit(t *testing.T) {
	api := newFakeAPI("secret")
	rt, states := startRuntime(t, api)

	path := writeTestPNG(t)

	rt.Dispatch(SelectSection{Section: SectionMember})
	rt.Dispatch(SetField{Field: "token", Value: "secret"})
	rt.Dispatch(SetField{Field: "name", Value: "Петров"})
	rt.Dispatch(AttachFile{Path: path})
	rt.Dispatch(Submit{})

	waitFor(t, states, "submit confirmation", func(s State) bool {
		return s.Message == "Record created"
	})
	if len(api.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(api.saved))
	}
	image, _ := api.saved[0]["image"].(string)
	if image == "" {
		t.Fatal("submit fired without the encoded attachment")
	}
}
