package view

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"
)

const (
	previewRows     = 18
	maxPreviewBytes = 8 * 1024 * 1024
)

// RenderImagePreview draws the image at source with chafa. Sources starting
// with http:// or https:// are downloaded; anything else is read from disk.
func RenderImagePreview(source string, width int) (string, error) {
	if width < 30 {
		width = 40
	}

	chafaPath, err := exec.LookPath("chafa")
	if err != nil {
		return "", fmt.Errorf("chafa is not installed")
	}

	imageData, err := readImage(source)
	if err != nil {
		return "", err
	}

	format := "symbols"
	if SupportsKittyGraphics() {
		format = "kitty"
	}
	args := []string{
		"--size", fmt.Sprintf("%dx%d", width, previewRows),
		"--view-size", fmt.Sprintf("%dx%d", width, previewRows),
		"--align", "top,center",
		"--format", format,
	}
	if format == "kitty" {
		args = append(args, "--passthrough", KittyPassthroughMode(), "--relative", "on")
	}
	args = append(args, "-")

	cmd := exec.Command(chafaPath, args...)
	cmd.Stdin = bytes.NewReader(imageData)
	output, err := cmd.CombinedOutput()
	raw := string(output)
	trimmed := strings.TrimSpace(raw)
	if err != nil {
		return "", fmt.Errorf("render image via chafa: %w: %s", err, trimmed)
	}
	if format == "kitty" && strings.Contains(raw, "\x1b_G") {
		return strings.TrimRight(raw, "\r\n"), nil
	}
	if trimmed == "" {
		return "", fmt.Errorf("empty output")
	}
	return trimmed, nil
}

func readImage(source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := &http.Client{Timeout: 8 * time.Second}
		resp, err := client.Get(source)
		if err != nil {
			return nil, fmt.Errorf("download image: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("download image: status %d", resp.StatusCode)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxPreviewBytes))
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		return data, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxPreviewBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

func SupportsKittyGraphics() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	termProgram := strings.ToLower(strings.TrimSpace(os.Getenv("TERM_PROGRAM")))
	if strings.Contains(termProgram, "ghostty") || strings.Contains(termProgram, "kitty") {
		return true
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	return strings.Contains(term, "xterm-kitty") || strings.Contains(term, "ghostty")
}

func KittyPassthroughMode() string {
	if os.Getenv("TMUX") != "" {
		return "screen"
	}
	return "none"
}
