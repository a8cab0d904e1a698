package tui

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hejijunhao/seclog/internal/export"
	"github.com/hejijunhao/seclog/internal/pipeline"
)

type loadedMsg struct {
	res pipeline.LoadResult
	err error
}

type exportedMsg struct {
	paths []string
	err   error
}

func loadCmd(ctx context.Context, s Session) tea.Cmd {
	return func() tea.Msg {
		res, err := s.Load(ctx)
		return loadedMsg{res: res, err: err}
	}
}

// exportCmd writes rows once per format under dir, named by the current time.
func exportCmd(rows []export.Row, dir string, formats []string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		base := filepath.Join(dir, "seclog-"+now.Format("20060102-150405"))
		paths, err := export.WriteFiles(base, formats, rows)
		return exportedMsg{paths: paths, err: err}
	}
}
