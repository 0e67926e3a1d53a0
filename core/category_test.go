package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCategoryName(t *testing.T) {
	name, err := ValidateCategoryName("  Games ")
	require.NoError(t, err)
	assert.Equal(t, "games", name)

	_, err = ValidateCategoryName("   ")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "category name required", err.Error())
}

func TestValidateCategoryNameLength(t *testing.T) {
	name, err := ValidateCategoryName(strings.Repeat("a", MaxCategoryNameLength))
	require.NoError(t, err)
	assert.Len(t, name, MaxCategoryNameLength)

	_, err = ValidateCategoryName(strings.Repeat("a", MaxCategoryNameLength+1))
	require.Error(t, err)
	assert.Equal(t, "category name too long", err.Error())

	_, err = ValidateCategoryName(strings.Repeat("é", MaxCategoryNameLength))
	assert.NoError(t, err)
}
