package mode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextModeCyclesBackAfterThreeSteps(t *testing.T) {
	for _, kind := range Kinds {
		m := New(kind, 7)
		for i := 0; i < 3; i++ {
			m.NextMode()
			assert.Equal(t, StartingPage, m.Page, "cycling must reset the page")
		}
		assert.Equal(t, kind, m.Kind)
	}
}

func TestPrevModeIsInverseOfNextMode(t *testing.T) {
	for _, kind := range Kinds {
		m := New(kind, 3)
		m.NextMode()
		m.PrevMode()
		assert.Equal(t, New(kind, StartingPage), m)
	}
}

func TestModeCycleOrder(t *testing.T) {
	m := Default()
	m.NextMode()
	assert.Equal(t, Newest, m.Kind)
	m.NextMode()
	assert.Equal(t, Active, m.Kind)
	m.NextMode()
	assert.Equal(t, Hottest, m.Kind)

	m.PrevMode()
	assert.Equal(t, Active, m.Kind)
	m.PrevMode()
	assert.Equal(t, Newest, m.Kind)
}

func TestNextThenPrevPageRestoresPage(t *testing.T) {
	for p := int(StartingPage); p < math.MaxUint8; p++ {
		m := New(Newest, uint8(p))
		require.True(t, m.NextPage())
		require.True(t, m.PrevPage())
		assert.Equal(t, uint8(p), m.Page)
	}
}

func TestNextPageSaturatesAtMaximum(t *testing.T) {
	m := New(Active, math.MaxUint8)
	assert.False(t, m.NextPage())
	assert.Equal(t, uint8(math.MaxUint8), m.Page)
}

func TestPrevPageStopsAtStartingPage(t *testing.T) {
	m := Default()
	assert.False(t, m.PrevPage())
	assert.Equal(t, StartingPage, m.Page)
	assert.Equal(t, 0, m.PageIndex())
}

func TestPath(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{New(Hottest, 1), "/page/1.json"},
		{New(Newest, 3), "/newest/page/3.json"},
		{New(Active, 12), "/active/page/12.json"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.mode.Path())
	}
	assert.Equal(t, "https://lobste.rs/newest/page/2.json", New(Newest, 2).URL("https://lobste.rs/"))
}

func TestParse(t *testing.T) {
	m, err := Parse("  ACTIVE ")
	require.NoError(t, err)
	assert.Equal(t, New(Active, StartingPage), m)

	_, err = Parse("recent")
	assert.Error(t, err)

	var decoded Mode
	require.NoError(t, decoded.UnmarshalText([]byte("newest")))
	assert.Equal(t, Newest, decoded.Kind)
	assert.Equal(t, "Newest", decoded.String())
}
