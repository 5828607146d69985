package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeclaration_ExactByteRange(t *testing.T) {
	source := []byte("import UIKit\n\nfunc f() {}\n")
	off := int64(strings.Index(string(source), "func"))

	decl, err := Declaration(source, off, 8)
	require.NoError(t, err)
	require.Equal(t, "func f()", decl)
	require.Equal(t, source[off:off+8], []byte(decl))
}

func TestDeclaration_MultiByteRoundTrip(t *testing.T) {
	source := []byte("let π = 3.14\n")

	decl, err := Declaration(source, 0, int64(len(source)-1))
	require.NoError(t, err)
	require.Equal(t, "let π = 3.14", decl)
}

func TestDeclaration_SplitRuneSubstitutes(t *testing.T) {
	// Cutting through the two-byte encoding of π must degrade, not fail.
	source := []byte("let π = 1\n")
	off := int64(strings.IndexRune(string(source), 'π'))

	decl, err := Declaration(source, 0, off+1)
	require.NoError(t, err)
	require.Equal(t, "let �", decl)
}

func TestDeclaration_OutOfRange(t *testing.T) {
	source := []byte("func f() {}")

	_, err := Declaration(source, 5, 100)
	require.Error(t, err)

	_, err = Declaration(source, -1, 2)
	require.Error(t, err)
}

func TestDeclaration_EmptyRange(t *testing.T) {
	decl, err := Declaration([]byte("abc"), 1, 0)
	require.NoError(t, err)
	require.Equal(t, "", decl)
}
