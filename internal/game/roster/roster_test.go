package roster_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/rpgbattle/internal/game/roster"
	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
)

const sample = `
participants:
  - archetype: warrior
  - archetype: Mage
    level: 3
  - archetype: troll
    name: Grug
    hp: 1
`

func TestParseAndBuild(t *testing.T) {
	r, err := roster.Parse([]byte(sample))
	require.NoError(t, err)

	units, err := r.Build(unit.MustDefaultCatalog())
	require.NoError(t, err)
	require.Len(t, units, 3)

	assert.Equal(t, "Warrior", units[0].Name)
	assert.Equal(t, 1, units[0].Level)
	assert.Equal(t, "Mage", units[1].Name)
	assert.Equal(t, 3, units[1].Level)
	assert.Equal(t, "Grug", units[2].Name)
	assert.Equal(t, unit.Troll, units[2].Archetype.ID)
	assert.Equal(t, 1, units[2].HP)
	assert.Greater(t, units[2].MaxHP, 1)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	units, err := roster.Load(path, unit.MustDefaultCatalog())
	require.NoError(t, err)
	assert.Len(t, units, 3)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := roster.Load("/nonexistent/roster.yaml", unit.MustDefaultCatalog())
	assert.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":            "participants: []\n",
		"no archetype":     "participants:\n  - level: 2\n",
		"negative level":   "participants:\n  - archetype: orc\n    level: -1\n",
		"zero hp override": "participants:\n  - archetype: orc\n    hp: 0\n",
		"malformed":        "participants: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := roster.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_LevelZeroDefaultsToOne(t *testing.T) {
	r, err := roster.Parse([]byte("participants:\n  - archetype: orc\n    level: 0\n"))
	require.NoError(t, err)
	units, err := r.Build(unit.MustDefaultCatalog())
	require.NoError(t, err)
	assert.Equal(t, 1, units[0].Level)

	_, err = roster.Parse([]byte("participants:\n  - archetype: orc\n    level: -2\n"))
	assert.ErrorContains(t, err, "level must be >= 0 (0 means level 1), got -2")
}

func TestBuild_UnknownArchetype(t *testing.T) {
	r, err := roster.Parse([]byte("participants:\n  - archetype: beholder\n"))
	require.NoError(t, err)
	_, err = r.Build(unit.MustDefaultCatalog())
	assert.ErrorContains(t, err, "beholder")
}

func TestBuild_DuplicateNames(t *testing.T) {
	r, err := roster.Parse([]byte("participants:\n  - archetype: orc\n  - archetype: orc\n"))
	require.NoError(t, err)
	_, err = r.Build(unit.MustDefaultCatalog())
	assert.ErrorContains(t, err, "already used")

	r, err = roster.Parse([]byte("participants:\n  - archetype: orc\n  - archetype: orc\n    name: Orc Chief\n"))
	require.NoError(t, err)
	units, err := r.Build(unit.MustDefaultCatalog())
	require.NoError(t, err)
	assert.Equal(t, "Orc Chief", units[1].Name)
}

func TestFind_CaseInsensitive(t *testing.T) {
	cat := unit.MustDefaultCatalog()
	units := []*unit.Unit{cat.MustNew(unit.Warrior, 1), cat.MustNew(unit.GreenDragon, 1)}

	got, ok := roster.Find(units, "greendragon")
	require.True(t, ok)
	assert.Same(t, units[1], got)

	_, ok = roster.Find(units, "Orc")
	assert.False(t, ok)
}

func TestProperty_HPOverrideClampedToMax(t *testing.T) {
	cat := unit.MustDefaultCatalog()
	rapid.Check(t, func(rt *rapid.T) {
		hp := rapid.IntRange(1, 1000).Draw(rt, "hp")
		level := rapid.IntRange(1, 10).Draw(rt, "level")
		r := &roster.Roster{Participants: []roster.Entry{{Archetype: unit.Skeleton, Level: level, HP: &hp}}}
		require.NoError(rt, r.Validate())

		units, err := r.Build(cat)
		require.NoError(rt, err)
		u := units[0]
		assert.Equal(rt, min(hp, u.MaxHP), u.HP)
	})
}
