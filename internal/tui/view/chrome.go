package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/inkbook/internal/tui/theme"

	"github.com/glabrego/inkbook/internal/gallery"
)

func Toolbar(inDetail, searching, hasActiveFilters bool) string {
	if inDetail {
		return "j/k scroll | [ ] prev/next | o open | y copy | esc back | ? help"
	}
	if searching {
		return "type to search | enter/esc done | ctrl+u clear"
	}
	bar := "j/k move | enter details | / search | tab/shift+tab style | r reload | ? help | q quit"
	if hasActiveFilters {
		bar += " | x reset filters"
	}
	return bar
}

// ListFooter summarises the reveal state below the gallery list.
func ListFooter(snap gallery.Snapshot, th tuitheme.Theme) string {
	if snap.Matched == 0 {
		return th.StateWarn.Render("No images match your filters.")
	}
	progress := fmt.Sprintf("%d of %d", len(snap.Visible), snap.Matched)
	switch {
	case snap.Exhausted:
		return th.StateDone.Render("End of gallery") + " " + th.MetaValue.Render("("+progress+")")
	case snap.Reveal == gallery.RevealLoading:
		return th.StateLoad.Render("Loading more...") + " " + th.MetaValue.Render("("+progress+")")
	default:
		return th.MetaLabel.Render("Scroll for more") + " " + th.MetaValue.Render("("+progress+")")
	}
}

func Footer(snap gallery.Snapshot, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("style") + " " + th.MetaValue.Render(snap.State.Style),
		th.MetaValue.Render(fmt.Sprintf("%d shown", len(snap.Visible))),
		th.MetaValue.Render(fmt.Sprintf("%d matched", snap.Matched)),
		th.MetaValue.Render(fmt.Sprintf("%d total", snap.Total)),
	}
	if snap.State.Search != "" {
		parts = append(parts, th.MetaLabel.Render("search")+" "+th.MetaValue.Render(fmt.Sprintf("%q", snap.State.Search)))
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, status string, err error, th tuitheme.Theme) string {
	state := "idle"
	stateLabel := th.StateIdle.Render("state")
	main := "Ready"
	if loading {
		state = "loading"
		stateLabel = th.StateLoad.Render("state")
	}
	if err != nil {
		state = "warning"
		stateLabel = th.StateWarn.Render("state")
		main = err.Error()
	}
	if status != "" {
		main = status
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
