package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRegion(t *testing.T) {
	var s Selector

	assert.Equal(t, "fieldRA between 0 and 10", s.SelectRegion("RA", 0, 10))
	assert.Equal(t, "fieldDec between -90 and -61", s.SelectRegion("Dec", -90, -61))
}

func TestSelectRegionWrapsThroughZero(t *testing.T) {
	var s Selector

	got := s.SelectRegion("RA", 330, 30)
	assert.Equal(t, "(fieldRA between 330 and 360 or fieldRA between 0 and 30)", got)
}

func TestGalacticRegion(t *testing.T) {
	var s Selector

	got := s.GalacticRegion(10, 0, 90)
	assert.Equal(t, "abs(fieldGB) <= (10 - (10 * abs(fieldGL) / 90))", got)
}

func TestCombineQueries(t *testing.T) {
	var s Selector

	query, err := s.CombineQueries([]string{"a", "b", "c"}, []string{"and", "or"})
	require.NoError(t, err)
	assert.Equal(t, "select fieldId from field where a and b or c", query)
}

func TestCombineQueriesSingle(t *testing.T) {
	var s Selector

	query, err := s.CombineQueries([]string{"a"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "select fieldId from field where a", query)
}

func TestCombineQueriesMismatch(t *testing.T) {
	var s Selector

	_, err := s.CombineQueries([]string{"a", "b"}, nil)
	require.Error(t, err)

	_, err = s.CombineQueries([]string{"a"}, []string{"and"})
	require.Error(t, err)
}

func TestCombineQueriesEmpty(t *testing.T) {
	var s Selector

	_, err := s.CombineQueries(nil, nil)
	require.ErrorIs(t, err, ErrNoQueries)
}
