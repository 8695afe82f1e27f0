package update

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/stepup/internal/apply"
	"github.com/conn-castle/stepup/internal/chain"
	"github.com/conn-castle/stepup/internal/remote"
	"github.com/conn-castle/stepup/internal/version"
	"github.com/conn-castle/stepup/internal/warnings"
)

type fakeFetcher struct {
	sink      *warnings.Sink
	failAt    string
	err       error
	fetched   []string
	discarded []string
}

func (f *fakeFetcher) Fetch(_ context.Context, v version.Version) (string, error) {
	f.fetched = append(f.fetched, v.String())
	if v.String() == f.failAt {
		return "", f.err
	}
	return "Update_" + v.String() + ".zip", nil
}

func (f *fakeFetcher) Discard(v version.Version, path string) {
	f.discarded = append(f.discarded, path)
}

// fakeApplier commits each version to marker unless it is failAt.
type fakeApplier struct {
	sink   *warnings.Sink
	marker string
	failAt string
	warnAt string
}

func (a *fakeApplier) Apply(_ string, target version.Version) (apply.Result, error) {
	if target.String() == a.warnAt {
		a.sink.Add(warnings.Warning{Code: warnings.CodeFileCopy, Version: target.String(), Message: "copy failed"})
	}
	if target.String() == a.failAt {
		return apply.Result{Version: target.String(), Stage: apply.StageFailed}, &apply.ArchiveError{Path: "x", Err: errors.New("corrupt")}
	}
	a.marker = target.String()
	return apply.Result{Version: target.String(), Stage: apply.StageCommitted}, nil
}

func chainOf(versions ...string) chain.Chain {
	out := make(chain.Chain, 0, len(versions))
	for _, v := range versions {
		out = append(out, version.Parse(v))
	}
	return out
}

func newRunnerFixture() (*fakeFetcher, *fakeApplier, *warnings.Sink, *Runner) {
	sink := warnings.NewSink(nil)
	fetcher := &fakeFetcher{sink: sink}
	applier := &fakeApplier{sink: sink, marker: "1.0"}
	return fetcher, applier, sink, NewRunner(fetcher, applier, sink, &bytes.Buffer{})
}

func TestRunAppliesWholeChain(t *testing.T) {
	fetcher, applier, sink, runner := newRunnerFixture()
	applier.warnAt = "1.2"
	sink.Add(warnings.Warning{Message: "left over from a previous run"})

	res, err := runner.Run(context.Background(), chainOf("1.1", "1.2", "1.3"), version.Parse("1.3"))
	require.NoError(t, err)
	assert.Equal(t, "1.3", applier.marker)
	assert.Equal(t, []string{"1.1", "1.2", "1.3"}, version.Strings(res.Committed))
	assert.Equal(t, []string{"Update_1.1.zip", "Update_1.2.zip", "Update_1.3.zip"}, fetcher.discarded)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, warnings.CodeFileCopy, res.Warnings[0].Code)
	final, ok := res.Final()
	assert.True(t, ok)
	assert.Equal(t, "1.3", final.String())
}

func TestRunIsNotTransactional(t *testing.T) {
	fetcher, applier, _, runner := newRunnerFixture()
	applier.failAt = "1.2"

	res, err := runner.Run(context.Background(), chainOf("1.1", "1.2", "1.3"), version.Parse("1.3"))
	var chainErr *ChainError
	require.ErrorAs(t, err, &chainErr)
	assert.Equal(t, "1.2", chainErr.Version)
	assert.Equal(t, []string{"1.1"}, chainErr.Committed)
	var archiveErr *apply.ArchiveError
	assert.ErrorAs(t, err, &archiveErr)

	assert.Equal(t, "1.1", applier.marker, "marker stays at the last committed element")
	assert.Equal(t, []string{"1.1", "1.2"}, fetcher.fetched, "no element after the failure is attempted")
	assert.Equal(t, []string{"Update_1.1.zip"}, fetcher.discarded)
	require.Len(t, res.Applied, 2)
	assert.Equal(t, apply.StageFailed, res.Applied[1].Stage)
}

func TestRunStopsOnFetchFailure(t *testing.T) {
	fetcher, applier, _, runner := newRunnerFixture()
	fetcher.failAt = "1.1"
	fetcher.err = &remote.NetworkError{Kind: remote.KindTimeout, URL: "u", Err: context.DeadlineExceeded}

	res, err := runner.Run(context.Background(), chainOf("1.1", "1.2"), version.Parse("1.2"))
	require.Error(t, err)
	assert.True(t, remote.IsTimeout(err))
	assert.Empty(t, res.Committed)
	assert.Equal(t, "1.0", applier.marker)
	assert.Equal(t, []string{"1.1"}, fetcher.fetched)
}

func TestRunWarnsWhenChainStopsShort(t *testing.T) {
	_, _, _, runner := newRunnerFixture()

	res, err := runner.Run(context.Background(), chainOf("1.1"), version.Parse("1.2"))
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, warnings.CodeChainShortOfLatest, res.Warnings[0].Code)
	assert.Equal(t, "1.2", res.Warnings[0].Subject)
}

func TestRunEmptyChain(t *testing.T) {
	_, _, _, runner := newRunnerFixture()
	_, err := runner.Run(context.Background(), nil, version.Parse("1.0"))
	assert.ErrorIs(t, err, ErrNoChain)
}
