package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
)

const unavailableMsg = "FFmpeg not installed. Please install FFmpeg to enable MP3 conversion."

type FFmpegConverter struct {
	bin string // пусто: ffmpeg не найден
}

// NewFFmpegConverter resolves the binary once at startup.
func NewFFmpegConverter(configured string) *FFmpegConverter {
	return &FFmpegConverter{bin: FindFFmpeg(configured)}
}

func (c *FFmpegConverter) Available() bool { return c.bin != "" }

func (c *FFmpegConverter) Path() string { return c.bin }

// FindFFmpeg: explicit path, затем PATH, затем типовые места установки.
func FindFFmpeg(configured string) string {
	if configured != "" && isExecutable(configured) {
		return configured
	}

	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p
	}

	for _, p := range platformPaths(runtime.GOOS) {
		if isExecutable(p) {
			return p
		}
	}
	return ""
}

func platformPaths(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/local/bin/ffmpeg",
		}
	case "windows":
		paths := []string{
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\ffmpeg\bin\ffmpeg.exe`,
		}
		if pf := os.Getenv("PROGRAMFILES"); pf != "" {
			paths = append(paths, filepath.Join(pf, "ffmpeg", "bin", "ffmpeg.exe"))
		}
		if la := os.Getenv("LOCALAPPDATA"); la != "" {
			paths = append(paths, filepath.Join(la, "ffmpeg", "bin", "ffmpeg.exe"))
		}
		return paths
	default:
		return []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
}

func isExecutable(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func convertArgs(input, output string) []string {
	return []string{"-i", input, "-codec:a", "libmp3lame", "-qscale:a", "2", output, "-y"}
}

func (c *FFmpegConverter) ToMP3(ctx context.Context, src io.Reader) ([]byte, error) {
	if c.bin == "" {
		return nil, &domain.UnavailableError{Msg: unavailableMsg}
	}

	// 1. уникальный temp-dir на каждый вызов
	tmpDir, err := os.MkdirTemp("", "mp3conv-"+uuid.NewString())
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	input := filepath.Join(tmpDir, "input.webm")
	output := filepath.Join(tmpDir, "output.mp3")

	// 2. пишем вход
	f, err := os.Create(input)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	// 3. запускаем ffmpeg
	cmd := exec.CommandContext(ctx, c.bin, convertArgs(input, output)...)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}

	return os.ReadFile(output)
}
