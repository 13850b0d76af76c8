package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/error_notificator"
)

type fakeConverter struct {
	out []byte
	err error
}

func (f *fakeConverter) ToMP3(ctx context.Context, src io.Reader) ([]byte, error) {
	io.Copy(io.Discard, src)
	return f.out, f.err
}

func newTestService(c Converter) *MediaService {
	log := logger.NewZapLogger(zap.NewNop().Sugar())
	return NewMediaService(c, error_notificator.NewService(nil, log), 0, log)
}

func TestConvertArgs(t *testing.T) {
	want := []string{"-i", "in.webm", "-codec:a", "libmp3lame", "-qscale:a", "2", "out.mp3", "-y"}
	if got := convertArgs("in.webm", "out.mp3"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v", got)
	}
}

func TestFindFFmpeg_Configured(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	if got := FindFFmpeg(bin); got != bin {
		t.Errorf("FindFFmpeg = %q, want %q", got, bin)
	}
}

func TestToMP3_Unavailable(t *testing.T) {
	c := &FFmpegConverter{}
	_, err := c.ToMP3(context.Background(), strings.NewReader("x"))
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if err.Error() != unavailableMsg {
		t.Errorf("message = %q", err.Error())
	}
}

func TestConvert_ErrorKinds(t *testing.T) {
	_, err := newTestService(&FFmpegConverter{}).Convert(context.Background(), strings.NewReader("x"))
	if domain.StatusOf(err) != http.StatusBadRequest {
		t.Errorf("unavailable status = %d", domain.StatusOf(err))
	}

	_, err = newTestService(&fakeConverter{err: errors.New("exit status 1")}).Convert(context.Background(), strings.NewReader("x"))
	if domain.StatusOf(err) != http.StatusBadGateway {
		t.Errorf("runtime failure status = %d", domain.StatusOf(err))
	}
}

func upload(t *testing.T, h *Handler, withFile bool) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if withFile {
		fw, _ := mw.CreateFormFile("audio", "rec.webm")
		fw.Write([]byte("webm"))
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/convert_to_mp3", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ConvertToMP3(rec, req)
	return rec
}

func TestHandler_ConvertToMP3(t *testing.T) {
	h := NewHandler(newTestService(&fakeConverter{out: []byte("ID3")}), 1<<20)

	rec := upload(t, h, true)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"mp3":"SUQz"`) {
		t.Errorf("got %d %s", rec.Code, rec.Body)
	}

	rec = upload(t, h, false)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file status = %d", rec.Code)
	}
}

func TestHandler_Unavailable(t *testing.T) {
	h := NewHandler(newTestService(&FFmpegConverter{}), 1<<20)

	rec := upload(t, h, true)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "FFmpeg not installed") {
		t.Errorf("got %d %s", rec.Code, rec.Body)
	}
}
