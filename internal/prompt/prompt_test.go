package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePrompterAnswers(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"upper YES", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty uses default yes", "\n", true, true},
		{"empty uses default no", "\n", false, false},
		{"eof is no", "", true, false},
		{"retry after invalid", "maybe\ny\n", false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewLinePrompter(strings.NewReader(tc.input), &out)
			got, err := p.Confirm("Continue?", tc.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Contains(t, out.String(), "Continue?")
		})
	}
}

func TestLinePrompterKeepsBufferedInput(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("y\nn\n"), &bytes.Buffer{})
	first, err := p.Confirm("one", false)
	require.NoError(t, err)
	second, err := p.Confirm("two", true)
	require.NoError(t, err)
	assert.True(t, first)
	assert.False(t, second)
}

func TestLinePrompterInvalidAtEOF(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("maybe"), &bytes.Buffer{})
	_, err := p.Confirm("Continue?", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maybe")
}

func TestHuhPrompter(t *testing.T) {
	orig := runFormFunc
	t.Cleanup(func() { runFormFunc = orig })

	runFormFunc = func(*huh.Form) error { return nil }
	got, err := HuhPrompter{}.Confirm("Continue?", true)
	require.NoError(t, err)
	assert.True(t, got)

	runFormFunc = func(*huh.Form) error { return huh.ErrUserAborted }
	got, err = HuhPrompter{}.Confirm("Continue?", true)
	require.NoError(t, err)
	assert.False(t, got)

	boom := errors.New("tty gone")
	runFormFunc = func(*huh.Form) error { return boom }
	_, err = HuhPrompter{}.Confirm("Continue?", true)
	assert.ErrorIs(t, err, boom)
}

func TestNewAndAlways(t *testing.T) {
	_, ok := New(strings.NewReader(""), &bytes.Buffer{}, true).(*HuhPrompter)
	assert.True(t, ok)
	_, ok = New(strings.NewReader(""), &bytes.Buffer{}, false).(*LinePrompter)
	assert.True(t, ok)

	got, err := Always{Answer: true}.Confirm("x", false)
	require.NoError(t, err)
	assert.True(t, got)
}
