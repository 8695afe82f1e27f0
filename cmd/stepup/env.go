package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/stepup/internal/apply"
	"github.com/conn-castle/stepup/internal/config"
	"github.com/conn-castle/stepup/internal/fetch"
	"github.com/conn-castle/stepup/internal/progress"
	"github.com/conn-castle/stepup/internal/remote"
	"github.com/conn-castle/stepup/internal/state"
	"github.com/conn-castle/stepup/internal/terminal"
	"github.com/conn-castle/stepup/internal/textenc"
	"github.com/conn-castle/stepup/internal/update"
	"github.com/conn-castle/stepup/internal/warnings"
)

// loadSettings finds and loads the configuration named by --config or the
// default candidates beside the binary.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	explicit, _ := cmd.Flags().GetString(flagConfig)
	dir := ""
	if explicit == "" {
		var err error
		dir, err = updaterDir()
		if err != nil {
			return nil, err
		}
	}
	path, err := config.Find(explicit, dir)
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// engine is the wired update pipeline for one install.
type engine struct {
	settings *config.Settings
	marker   *state.Marker
	client   *remote.Client
	sink     *warnings.Sink
	runner   *update.Runner
}

func newMarker(s *config.Settings) *state.Marker {
	return state.NewMarker(s.VersionFile, nil)
}

func newClient(s *config.Settings) *remote.Client {
	return remote.NewClient(remote.Endpoints{
		Latest:  s.LatestURL,
		List:    s.ListURL,
		Minimum: s.MinSupportedURL,
	}, nil, s.MetadataTimeout)
}

// newEngine wires fetcher, applier and runner around one warning sink.
// Progress goes to out and warnings are echoed to errOut.
func newEngine(s *config.Settings, out io.Writer, errOut io.Writer) (*engine, error) {
	enc, err := textenc.Lookup(s.TextEncoding)
	if err != nil {
		return nil, err
	}
	sink := warnings.NewSink(errOut)
	marker := newMarker(s)
	redraw := terminal.IsTerminalWriter(out)
	fetcher, err := fetch.New(fetch.Options{
		URLTemplate: s.PackageURLTemplate,
		Dir:         s.PackageDir,
		Timeout:     s.PackageTimeout,
		Warnings:    sink,
		Out:         out,
		Progress: func(label string, total int64) fetch.Progress {
			return progress.New(out, label, total, redraw)
		},
	})
	if err != nil {
		return nil, err
	}
	applier, err := apply.New(apply.Options{
		InstallRoot:    s.Root,
		WorkDir:        s.TempDir,
		DeleteListName: s.DeleteListName,
		Encoding:       enc,
		Marker:         marker,
		Warnings:       sink,
		Out:            out,
	})
	if err != nil {
		return nil, err
	}
	return &engine{
		settings: s,
		marker:   marker,
		client:   newClient(s),
		sink:     sink,
		runner:   update.NewRunner(fetcher, applier, sink, out),
	}, nil
}
