package audio

import "testing"

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

func TestNextAvailableName(t *testing.T) {
	tests := []struct {
		existing map[string]struct{}
		base     string
		want     string
	}{
		{set(), "lecture.mp3", "lecture.mp3"},
		{set("lecture.mp3"), "lecture.mp3", "lecture_1.mp3"},
		{set("lecture.mp3", "lecture_1.mp3"), "lecture.mp3", "lecture_2.mp3"},
		{set("lecture.mp3", "lecture_2.mp3"), "lecture.mp3", "lecture_1.mp3"},
		{set("a.b.wav"), "a.b.wav", "a.b_1.wav"},
		{set("noext"), "noext", "noext_1"},
		{set(".hidden"), ".hidden", ".hidden_1"},
		{set("Lecture.mp3"), "lecture.mp3", "lecture.mp3"},
	}
	for _, tt := range tests {
		if got := NextAvailableName(tt.existing, tt.base); got != tt.want {
			t.Errorf("NextAvailableName(%v, %q) = %q, want %q", tt.existing, tt.base, got, tt.want)
		}
	}
}

func TestSafeName(t *testing.T) {
	ok := []string{"a.mp3", "lecture 1.wav", "..hidden.ogg"}
	bad := []string{"", ".", "..", "../x.mp3", "a/b.mp3", `..\x.mp3`, "/etc/passwd", "a\x00.mp3"}

	for _, n := range ok {
		if !safeName(n) {
			t.Errorf("safeName(%q) = false, want true", n)
		}
	}
	for _, n := range bad {
		if safeName(n) {
			t.Errorf("safeName(%q) = true, want false", n)
		}
	}
}

func TestCleanName(t *testing.T) {
	tests := map[string]string{
		"talk.mp3":              "talk.mp3",
		"C:\\Users\\me\\a.webm": "a.webm",
		"../../etc/x.ogg":       "x.ogg",
		"..":                    "",
		"/":                     "",
	}
	for in, want := range tests {
		if got := cleanName(in); got != want {
			t.Errorf("cleanName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsAudio(t *testing.T) {
	for _, n := range []string{"a.mp3", "b.WAV", "c.M4a", "d.ogg", "e.webm"} {
		if !isAudio(n) {
			t.Errorf("isAudio(%q) = false", n)
		}
	}
	for _, n := range []string{"a.txt", "mp3", "b.mp4", "c.json"} {
		if isAudio(n) {
			t.Errorf("isAudio(%q) = true", n)
		}
	}
}
