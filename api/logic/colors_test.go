/* colors_test.go
 * Contains unit tests for the team-color helpers and fuzzy name resolution
 */

package logic

import (
	"testing"

	"patota-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette() []shared.TeamColor {
	return []shared.TeamColor{
		{TeamColorID: "c1", Name: "Rojo"},
		{TeamColorID: "c2", Name: "Azul"},
		{TeamColorID: "c3", Name: "Verde Fluo"},
	}
}

func TestRandomColorPair_Distinct(t *testing.T) {
	palette := testPalette()
	for i := 0; i < 50; i++ {
		a, b, err := RandomColorPair(palette)
		require.NoError(t, err)
		assert.NotEqual(t, a.TeamColorID, b.TeamColorID)
	}
}

func TestRandomColorPair_TooFewColors(t *testing.T) {
	_, _, err := RandomColorPair(testPalette()[:1])
	assert.Error(t, err)

	_, _, err = RandomColorPair(nil)
	assert.Error(t, err)
}

func TestSameColorWarning(t *testing.T) {
	palette := testPalette()
	assert.True(t, SameColorWarning(palette[0], palette[0]))
	assert.False(t, SameColorWarning(palette[0], palette[1]))
	assert.False(t, SameColorWarning(shared.TeamColor{}, shared.TeamColor{}), "unset colors never warn")
}

func TestResolveColor_ExactBeatsFuzzy(t *testing.T) {
	c, err := ResolveColor("rojo", testPalette())
	require.NoError(t, err)
	assert.Equal(t, "c1", c.TeamColorID)
}

func TestResolveColor_FuzzyMatch(t *testing.T) {
	c, err := ResolveColor("verde", testPalette())
	require.NoError(t, err)
	assert.Equal(t, "c3", c.TeamColorID)
}

func TestResolveColor_ClosestWinsOverListOrder(t *testing.T) {
	// both names fuzzy-match "verde"; the closer one must win even though it is
	// listed second
	palette := []shared.TeamColor{
		{TeamColorID: "c1", Name: "Verde Fluo Claro"},
		{TeamColorID: "c2", Name: "Verde"},
	}

	c, err := ResolveColor("verd", palette)
	require.NoError(t, err)
	assert.Equal(t, "c2", c.TeamColorID)
}

func TestResolveColor_NoMatch(t *testing.T) {
	_, err := ResolveColor("magenta", testPalette())
	assert.Error(t, err)
}

func TestResolvePlayer(t *testing.T) {
	players := []shared.MatchPlayer{
		{MatchPlayerID: "mp1", PlayerName: "Juan Perez"},
		{MatchPlayerID: "mp2", PlayerName: "Maria Lopez"},
	}

	p, err := ResolvePlayer("juan perez", players)
	require.NoError(t, err)
	assert.Equal(t, "mp1", p.MatchPlayerID)

	p, err = ResolvePlayer("maria", players)
	require.NoError(t, err)
	assert.Equal(t, "mp2", p.MatchPlayerID)

	_, err = ResolvePlayer("pedro", players)
	assert.Error(t, err)
}

func TestResolvePlayer_ClosestWinsOverListOrder(t *testing.T) {
	players := []shared.MatchPlayer{
		{MatchPlayerID: "mp1", PlayerName: "Roberto Carlos"},
		{MatchPlayerID: "mp2", PlayerName: "Roberto"},
	}

	p, err := ResolvePlayer("robert", players)
	require.NoError(t, err)
	assert.Equal(t, "mp2", p.MatchPlayerID)
}
