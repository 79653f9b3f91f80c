// Package testutil holds helpers shared by tests against external APIs.
package testutil

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/dnaeon/go-vcr.v2/cassette"
	"gopkg.in/dnaeon/go-vcr.v2/recorder"
)

// NewVCRRecorder opens the named cassette under testdata/fixtures. Replays
// by default; set VCR_MODE=record with real credentials to refresh a
// cassette. Credentials are stripped before anything hits disk.
func NewVCRRecorder(t *testing.T, name string) (*recorder.Recorder, func()) {
	t.Helper()

	mode := recorder.ModeReplaying
	if os.Getenv("VCR_MODE") == "record" {
		mode = recorder.ModeRecording
	}

	r, err := recorder.NewAsMode(filepath.Join("testdata", "fixtures", name), mode, nil)
	if err != nil {
		t.Fatalf("open cassette %s: %v", name, err)
	}

	// Bodies carry prompts that change between runs; match on route only.
	r.SetMatcher(func(req *http.Request, i cassette.Request) bool {
		return req.Method == i.Method && req.URL.String() == i.URL
	})

	r.AddSaveFilter(func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "Authorization")
		delete(i.Request.Headers, "Xi-Api-Key")
		return nil
	})

	return r, func() {
		if err := r.Stop(); err != nil {
			t.Errorf("stop recorder for %s: %v", name, err)
		}
	}
}

// VCRHTTPClient wraps the recorder as an http.Client transport.
func VCRHTTPClient(r *recorder.Recorder) *http.Client {
	return &http.Client{Transport: r}
}
