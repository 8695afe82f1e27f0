package update

import (
	"context"
	"fmt"
	"io"

	"github.com/conn-castle/stepup/internal/apply"
	"github.com/conn-castle/stepup/internal/chain"
	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/version"
	"github.com/conn-castle/stepup/internal/warnings"
)

// Fetcher downloads and discards packages.
type Fetcher interface {
	Fetch(ctx context.Context, v version.Version) (string, error)
	Discard(v version.Version, path string)
}

// Applier installs one package.
type Applier interface {
	Apply(packagePath string, target version.Version) (apply.Result, error)
}

// ChainError reports the chain element that halted a run. Versions committed
// before it stay installed.
type ChainError struct {
	Version   string
	Committed []string
	Err       error
}

func (e *ChainError) Error() string {
	return fmt.Sprintf(messages.UpdateChainHaltedFmt, e.Version, e.Err)
}

func (e *ChainError) Unwrap() error {
	return e.Err
}

// Result summarizes a run.
type Result struct {
	Chain     chain.Chain
	Committed []version.Version
	// Applied holds the per-version apply results in chain order, including a failed one.
	Applied  []apply.Result
	Warnings []warnings.Warning
}

// Final returns the last committed version, if any.
func (r Result) Final() (version.Version, bool) {
	if len(r.Committed) == 0 {
		return version.Invalid, false
	}
	return r.Committed[len(r.Committed)-1], true
}

// Runner drives a chain through a Fetcher and an Applier.
type Runner struct {
	fetcher Fetcher
	applier Applier
	sink    *warnings.Sink
	out     io.Writer
}

// NewRunner returns a Runner. sink must be the one shared with fetcher and applier.
func NewRunner(fetcher Fetcher, applier Applier, sink *warnings.Sink, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{fetcher: fetcher, applier: applier, sink: sink, out: out}
}

// Run installs every element of c in order, stopping at the first fetch or
// apply failure. The chain is not transactional: elements committed before a
// failure are kept. The warning sink is reset first. When latest is valid and c
// stops short of it a warning is recorded.
func (r *Runner) Run(ctx context.Context, c chain.Chain, latest version.Version) (Result, error) {
	r.sink.Reset()
	res := Result{Chain: c}
	if len(c) == 0 {
		return res, ErrNoChain
	}
	if latest.Valid() && !c.ReachesTarget(latest) {
		last, _ := c.Last()
		r.sink.Add(warnings.Warning{
			Code:    warnings.CodeChainShortOfLatest,
			Version: last.String(),
			Subject: latest.String(),
			Message: messages.WarnChainShortOfLatest,
		})
	}

	for i, v := range c {
		_, _ = fmt.Fprintf(r.out, messages.UpdateProgressFmt, i+1, len(c), v)
		path, err := r.fetcher.Fetch(ctx, v)
		if err != nil {
			return r.halt(res, v, err)
		}
		applied, err := r.applier.Apply(path, v)
		res.Applied = append(res.Applied, applied)
		if err != nil {
			return r.halt(res, v, err)
		}
		r.fetcher.Discard(v, path)
		res.Committed = append(res.Committed, v)
		_, _ = fmt.Fprintf(r.out, messages.UpdateVersionDoneFmt, v)
	}
	res.Warnings = r.sink.List()
	return res, nil
}

func (r *Runner) halt(res Result, v version.Version, err error) (Result, error) {
	res.Warnings = r.sink.List()
	return res, &ChainError{Version: v.String(), Committed: version.Strings(res.Committed), Err: err}
}
