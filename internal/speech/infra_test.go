package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDeepgram_Utterances(t *testing.T) {
	var gotQuery, gotType, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		io.Copy(io.Discard, r.Body)
		w.Write([]byte(`{"results":{"utterances":[{"start":0.5,"transcript":"first"},{"start":3.2,"transcript":"second part"}]}}`))
	}))
	defer srv.Close()

	c := NewDeepgramClient("k")
	c.baseURL = srv.URL

	segs, err := c.Transcribe(context.Background(), strings.NewReader("x"), "rec.webm", "en")
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 2 || segs[1].Start != 3.2 || segs[1].Text != "second part" {
		t.Errorf("segments = %+v", segs)
	}
	if gotType != "audio/webm" || gotAuth != "Token k" {
		t.Errorf("headers type=%q auth=%q", gotType, gotAuth)
	}
	if !strings.Contains(gotQuery, "language=en") || !strings.Contains(gotQuery, "utterances=true") {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestDeepgram_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewDeepgramClient("k")
	c.baseURL = srv.URL
	if _, err := c.Transcribe(context.Background(), strings.NewReader("x"), "a.mp3", "en"); err == nil {
		t.Error("expected error")
	}
}

func TestDeepgram_NoKey(t *testing.T) {
	if _, err := NewDeepgramClient("").Transcribe(context.Background(), strings.NewReader("x"), "a.mp3", "en"); err == nil {
		t.Error("expected error")
	}
}

func TestElevenLabs_Synthesize(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		w.Write([]byte("ID3mp3"))
	}))
	defer srv.Close()

	c := NewElevenLabsClient("secret", "voice1")
	c.baseURL = srv.URL

	out, err := c.Synthesize(context.Background(), "Hello", "en")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "ID3mp3" || gotPath != "/voice1" || gotKey != "secret" {
		t.Errorf("out=%q path=%q key=%q", out, gotPath, gotKey)
	}
}

func TestOpenAI_NoKey(t *testing.T) {
	c := NewOpenAIClient(func(context.Context) string { return "" })
	if _, err := c.Synthesize(context.Background(), "hi", "en"); err == nil {
		t.Error("expected missing key error")
	}
}

func TestAudioContentType(t *testing.T) {
	cases := map[string]string{
		"a.webm": "audio/webm",
		"b.OGG":  "audio/ogg",
		"c.m4a":  "audio/mp4",
		"noext":  "audio/mpeg",
	}
	for name, want := range cases {
		if got := audioContentType(name); got != want {
			t.Errorf("%s: got %q, want %q", name, got, want)
		}
	}
}
