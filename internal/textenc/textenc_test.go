package textenc

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestLookupDefault(t *testing.T) {
	for _, name := range []string{"", "  ", "UTF-8", "utf8"} {
		enc, err := Lookup(name)
		require.NoError(t, err)
		assert.True(t, IsUTF8(enc))
	}
}

func TestLookupLegacy(t *testing.T) {
	enc, err := Lookup("GBK")
	require.NoError(t, err)
	assert.False(t, IsUTF8(enc))
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("no-such-charset")
	require.Error(t, err)
}

func TestNewReaderStripsBOM(t *testing.T) {
	data, err := io.ReadAll(NewReader(strings.NewReader("\xef\xbb\xbfOldAssets/\n"), nil))
	require.NoError(t, err)
	assert.Equal(t, "OldAssets/\n", string(data))
}

func TestDecodeGBK(t *testing.T) {
	encoded, err := simplifiedchinese.GBK.NewEncoder().String("存档/旧文件.dat")
	require.NoError(t, err)

	enc, err := Lookup("gbk")
	require.NoError(t, err)
	got, err := DecodeString(encoded, enc)
	require.NoError(t, err)
	assert.Equal(t, "存档/旧文件.dat", got)

	data, err := io.ReadAll(NewReader(strings.NewReader(encoded), enc))
	require.NoError(t, err)
	assert.Equal(t, "存档/旧文件.dat", string(data))
}

func TestDecodeStringUTF8Passthrough(t *testing.T) {
	got, err := DecodeString("plain.txt", Default)
	require.NoError(t, err)
	assert.Equal(t, "plain.txt", got)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "caf\u00e9.txt", NormalizePath("cafe\u0301.txt"))
	assert.Equal(t, "OldAssets/a.dat", NormalizePath("OldAssets/a.dat"))
}
