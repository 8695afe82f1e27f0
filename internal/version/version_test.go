package version

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int
		text string
	}{
		{name: "three segments", raw: "1.12.3", want: []int{1, 12, 3}, text: "1.12.3"},
		{name: "single segment", raw: "7", want: []int{7}, text: "7"},
		{name: "surrounding whitespace", raw: "  2.0.1\r\n", want: []int{2, 0, 1}, text: "2.0.1"},
		{name: "leading zeros kept in text", raw: "1.01", want: []int{1, 1}, text: "1.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Parse(tt.raw)
			require.True(t, v.Valid())
			assert.Equal(t, tt.want, v.segments)
			assert.Equal(t, tt.text, Format(v))
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "1..2", "1.2.", ".1", "1.a", "v1.2.3", "-1.0", "+1.0", "1.2-beta", "99999999999999999999"} {
		t.Run(raw, func(t *testing.T) {
			v := Parse(raw)
			assert.False(t, v.Valid())
			assert.Equal(t, "", v.String())

			_, err := ParseStrict(raw)
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, raw := range []string{"0", "1.0.0", "1.12.3", "10.0.0.42"} {
		a := Parse(raw)
		b := Parse(Format(a))
		assert.Equal(t, a, b)
		assert.True(t, Equal(a, b))
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.1", -1},
		{"1.2.0", "1.10.0", -1},
		{"2.0.0", "1.99.99", 1},
		{"1.2", "1.2.0", 0},
		{"1.2.0.0", "1.2", 0},
		{"1.2", "1.2.1", -1},
		{"1.3", "1.2.9", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			got, ok := Compare(Parse(tt.a), Parse(tt.b))
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvalidNeverOrders(t *testing.T) {
	valid := Parse("1.0.0")
	for _, other := range []Version{Invalid, valid} {
		_, ok := Compare(Invalid, other)
		assert.False(t, ok)
		assert.False(t, Less(Invalid, other))
		assert.False(t, Less(other, Invalid))
		assert.False(t, LessOrEqual(Invalid, other))
		assert.False(t, LessOrEqual(other, Invalid))
		assert.False(t, Equal(Invalid, other))
	}
}

func TestStrictTotalOrder(t *testing.T) {
	versions := []Version{Parse("0.9"), Parse("1.0.0"), Parse("1.0.1"), Parse("1.1"), Parse("1.10"), Parse("2")}
	for i := range versions {
		assert.False(t, Less(versions[i], versions[i]), "irreflexive at %s", versions[i])
		for j := range versions {
			if i < j {
				assert.True(t, Less(versions[i], versions[j]), "%s < %s", versions[i], versions[j])
				assert.False(t, Less(versions[j], versions[i]), "asymmetric %s %s", versions[j], versions[i])
			}
		}
	}
}

func TestSort(t *testing.T) {
	versions := []Version{Parse("1.10.0"), Invalid, Parse("1.2.0"), Parse("1.2"), Parse("0.1")}
	Sort(versions)
	assert.Equal(t, []string{"0.1", "1.2.0", "1.2", "1.10.0", ""}, Strings(versions))
}

func TestParseList(t *testing.T) {
	body := "1.0.0\n\n  1.1.0  \r\nbroken\n1.2.0\n"
	got := ParseList(body)
	assert.Equal(t, []string{"1.0.0", "1.1.0", "1.2.0"}, Strings(got))
	assert.Empty(t, ParseList(""))
}
