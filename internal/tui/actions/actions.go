package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/inkbook/internal/gallery"
	"github.com/glabrego/inkbook/internal/storage"
)

type Service interface {
	Reload(ctx context.Context) ([]gallery.Image, error)
	SavePreferences(ctx context.Context, prefs storage.Preferences) error
}

type ReloadSuccessMsg struct {
	Images   []gallery.Image
	Duration time.Duration
	Source   string
}

type ReloadErrorMsg struct {
	Err      error
	Duration time.Duration
	Source   string
}

type CatalogChangedMsg struct{}

type PreferenceSaveErrorMsg struct {
	Err error
}

type OpenURLSuccessMsg struct {
	Status string
}

type OpenURLErrorMsg struct {
	Err error
}

type PreviewSuccessMsg struct {
	ImageID string
	Preview string
}

type PreviewErrorMsg struct {
	ImageID string
	Err     error
}

type ClearStatusMsg struct {
	ID int
}

func ReloadCmd(service Service, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		start := time.Now()

		images, err := service.Reload(ctx)
		if err != nil {
			return ReloadErrorMsg{Err: err, Duration: time.Since(start), Source: source}
		}
		return ReloadSuccessMsg{Images: images, Duration: time.Since(start), Source: source}
	}
}

// WaitForCatalogChangeCmd blocks until the watcher signals, then reports it.
// It returns nil when there is no watcher.
func WaitForCatalogChangeCmd(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return CatalogChangedMsg{}
	}
}

func SavePreferencesCmd(service Service, prefs storage.Preferences) tea.Cmd {
	if service == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := service.SavePreferences(ctx, prefs); err != nil {
			return PreferenceSaveErrorMsg{Err: err}
		}
		return nil
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened image in browser"}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}

func PreviewCmd(imageID, source string, width int, renderFn func(string, int) (string, error)) tea.Cmd {
	if renderFn == nil {
		return nil
	}
	return func() tea.Msg {
		preview, err := renderFn(source, width)
		if err != nil {
			return PreviewErrorMsg{ImageID: imageID, Err: err}
		}
		return PreviewSuccessMsg{ImageID: imageID, Preview: preview}
	}
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
