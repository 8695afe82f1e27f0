// Package chain computes the ordered sequence of versions to install between the
// local version and the announced latest version.
package chain

import (
	"strings"

	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/version"
)

// Chain is the install-ordered list of versions for one run. Each element is
// strictly greater than the previous one.
type Chain []version.Version

// Resolve returns every published version v with current < v <= target, ascending.
//
// published does not need to be sorted: a copy is sorted by parsed version before
// filtering, Invalid entries are dropped, and when the list carries two spellings of
// the same release ("1.2" and "1.2.0") only the first one encountered is kept.
// An Invalid current or target, or an empty published list, yields an empty chain.
func Resolve(current version.Version, target version.Version, published []version.Version) Chain {
	if !current.Valid() || !target.Valid() || len(published) == 0 {
		return nil
	}
	sorted := make([]version.Version, 0, len(published))
	for _, v := range published {
		if v.Valid() {
			sorted = append(sorted, v)
		}
	}
	version.Sort(sorted)

	var out Chain
	for _, v := range sorted {
		if len(out) > 0 && version.Equal(out[len(out)-1], v) {
			continue
		}
		if version.Less(current, v) && version.LessOrEqual(v, target) {
			out = append(out, v)
		}
	}
	return out
}

// Last returns the final element of c.
func (c Chain) Last() (version.Version, bool) {
	if len(c) == 0 {
		return version.Invalid, false
	}
	return c[len(c)-1], true
}

// ReachesTarget reports whether the chain ends exactly at target.
// It is false when target was missing from the published list.
func (c Chain) ReachesTarget(target version.Version) bool {
	last, ok := c.Last()
	return ok && version.Equal(last, target)
}

// Strings formats each element in install order.
func (c Chain) Strings() []string {
	return version.Strings(c)
}

func (c Chain) String() string {
	if len(c) == 0 {
		return messages.ChainEmpty
	}
	return strings.Join(c.Strings(), messages.ChainSeparator)
}
