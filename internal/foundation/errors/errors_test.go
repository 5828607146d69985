package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_CategoryAndSeverity(t *testing.T) {
	err := NewError(CategoryMerge, "extraction failed").Warning().Build()

	require.Equal(t, CategoryMerge, err.Category())
	require.Equal(t, SeverityWarning, err.Severity())
	require.False(t, err.IsFatal())
	require.Contains(t, err.Error(), "[merge:warning] extraction failed")
}

func TestWrapError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("open failed")
	err := WrapError(cause, CategoryFileSystem, "failed to read page").Build()

	require.ErrorIs(t, err, cause)
	require.Equal(t, cause, errors.Unwrap(err))
}

func TestContext_SetAndGet(t *testing.T) {
	err := DocsError("placeholder not replaced").
		WithContext("page", "Classes/User.html").
		Build()

	page, ok := err.Context().GetString("page")
	require.True(t, ok)
	require.Equal(t, "Classes/User.html", page)
}

func TestGetCategory_UnclassifiedDefaultsToInternal(t *testing.T) {
	require.Equal(t, CategoryInternal, GetCategory(fmt.Errorf("plain")))
	require.Equal(t, SeverityError, GetSeverity(fmt.Errorf("plain")))
}

func TestConfigError_IsFatal(t *testing.T) {
	err := ConfigError("configuration file not found").Build()
	require.True(t, err.IsFatal())
	require.True(t, err.IsCategory(CategoryConfig))
}
