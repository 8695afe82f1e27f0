// Package update decides whether an install needs updating and drives the
// patch chain that brings it to the announced latest version.
package update

import (
	"context"
	"errors"
	"fmt"

	"github.com/conn-castle/stepup/internal/chain"
	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/version"
)

var (
	// ErrLocalUnavailable reports a missing or unreadable local version marker.
	ErrLocalUnavailable = errors.New(messages.UpdateLocalUnavailable)
	// ErrIncomplete reports version metadata that cannot be compared.
	ErrIncomplete = errors.New(messages.UpdateIncomplete)
	// ErrNoChain reports that no published version lies between local and latest.
	ErrNoChain = errors.New(messages.UpdateNoChain)
)

// BelowMinimumError reports an install too old to update incrementally.
// A full reinstall is required.
type BelowMinimumError struct {
	Local   string
	Minimum string
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf(messages.UpdateBelowMinimumFmt, e.Local, e.Minimum)
}

// LocalSource reads the installed version.
type LocalSource interface {
	Version() (version.Version, string, error)
}

// MetadataSource reads the remote metadata endpoints.
type MetadataSource interface {
	Latest(ctx context.Context) (version.Version, string, error)
	VersionList(ctx context.Context) ([]version.Version, error)
	MinimumSupported(ctx context.Context) (version.Version, bool)
}

// Plan is the outcome of a successful Check.
type Plan struct {
	Local      version.Version
	LocalText  string
	Latest     version.Version
	LatestText string
	Published  []version.Version
	Minimum    version.Version
	// MinimumKnown is false when the minimum supported version could not be read.
	MinimumKnown bool
	UpToDate     bool
	Chain        chain.Chain
}

// Check reads the local version and the remote metadata and computes the
// update chain.
//
// Latest and list failures are returned as network errors. An unreadable
// minimum only clears MinimumKnown. A plan is UpToDate when local >= latest.
func Check(ctx context.Context, local LocalSource, meta MetadataSource) (Plan, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	localVersion, localText, err := local.Version()
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %w", ErrLocalUnavailable, err)
	}

	latest, latestText, err := meta.Latest(ctx)
	if err != nil {
		return Plan{}, err
	}
	published, err := meta.VersionList(ctx)
	if err != nil {
		return Plan{}, err
	}
	minimum, minimumKnown := meta.MinimumSupported(ctx)

	plan := Plan{
		Local:        localVersion,
		LocalText:    localText,
		Latest:       latest,
		LatestText:   latestText,
		Published:    published,
		Minimum:      minimum,
		MinimumKnown: minimumKnown,
	}
	if minimumKnown && version.Less(localVersion, minimum) {
		return plan, &BelowMinimumError{Local: localText, Minimum: minimum.String()}
	}
	if !localVersion.Valid() || !latest.Valid() || len(published) == 0 {
		return plan, fmt.Errorf(messages.UpdateIncompleteDetailFmt, ErrIncomplete, localText, latestText, len(published))
	}
	if !version.Less(localVersion, latest) {
		plan.UpToDate = true
		return plan, nil
	}
	plan.Chain = chain.Resolve(localVersion, latest, published)
	if len(plan.Chain) == 0 {
		return plan, ErrNoChain
	}
	return plan, nil
}
