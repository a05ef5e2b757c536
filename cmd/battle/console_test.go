package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/rpgbattle/internal/config"
	"github.com/cory-johannsen/rpgbattle/internal/game/combat"
	"github.com/cory-johannsen/rpgbattle/internal/game/roster"
	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
)

func newTestBattle(t *testing.T, doc string) *combat.Battle {
	t.Helper()
	r, err := roster.Parse([]byte(doc))
	require.NoError(t, err)
	units, err := r.Build(unit.MustDefaultCatalog())
	require.NoError(t, err)
	return combat.NewBattle(units, combat.FirstPicker, zap.NewNop())
}

func TestConsole_PlaysToVictory(t *testing.T) {
	b := newTestBattle(t, `
participants:
  - archetype: cleric
  - archetype: troll
    hp: 1
`)
	var out bytes.Buffer
	in := strings.NewReader("fireball troll\nsmite nobody\nstatus\nsmite TROLL\n")

	require.NoError(t, NewConsole(b, in, &out).Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Troll hits Cleric with slash for 22 damage!")
	assert.Contains(t, text, "invalid command")
	assert.Contains(t, text, `no one called "nobody"`)
	assert.Contains(t, text, "HP 81/103")
	assert.Contains(t, text, "Cleric is now level 2!")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(text), "Victory!"))
	assert.Equal(t, combat.Victory, b.Outcome())
}

func TestConsole_QuitStopsEarly(t *testing.T) {
	b := newTestBattle(t, "participants:\n  - archetype: warrior\n  - archetype: orc\n")
	var out bytes.Buffer

	require.NoError(t, NewConsole(b, strings.NewReader("help\nquit\n"), &out).Run(context.Background()))
	assert.Contains(t, out.String(), "Warrior can use: fight, shield_slam, reckless_charge")
	assert.Contains(t, out.String(), "You flee the battle.")
	assert.Equal(t, combat.Ongoing, b.Outcome())
}

func TestConsole_EOFEndsQuietly(t *testing.T) {
	b := newTestBattle(t, "participants:\n  - archetype: warrior\n  - archetype: orc\n")
	assert.NoError(t, NewConsole(b, strings.NewReader(""), &bytes.Buffer{}).Run(context.Background()))
}

func TestNewPicker(t *testing.T) {
	assert.NotNil(t, newPicker(config.BattleConfig{Targeting: config.TargetingFirst}, zap.NewNop()))
	p := newPicker(config.BattleConfig{Targeting: config.TargetingRandom, Seed: 9}, zap.NewNop())
	_, ok := p.(*combat.RandomPicker)
	assert.True(t, ok)
}

func TestLoadCatalog_Default(t *testing.T) {
	cat, err := loadCatalog(config.BattleConfig{})
	require.NoError(t, err)
	assert.Len(t, cat.IDs(), 12)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	rosterPath := writeFile(t, dir, "roster.yaml", "participants:\n  - archetype: cleric\n  - archetype: troll\n    hp: 1\n")
	cfgPath := writeFile(t, dir, "config.yaml", "logging:\n  level: error\n  format: json\nbattle:\n  roster: "+rosterPath+"\n  targeting: first\n")
	env := filepath.Join(dir, "missing.env")

	var out bytes.Buffer
	code := run([]string{"-config", cfgPath, "-env", env}, strings.NewReader("smite troll\n"), &out)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Victory!")

	code = run([]string{"-config", cfgPath, "-env", env, "-roster", filepath.Join(dir, "nope.yaml")}, strings.NewReader(""), &bytes.Buffer{})
	assert.Equal(t, 1, code)

	code = run([]string{"-config", filepath.Join(dir, "nope.yaml"), "-env", env}, strings.NewReader(""), &bytes.Buffer{})
	assert.Equal(t, 1, code)

	code = run([]string{"-bogus"}, strings.NewReader(""), &bytes.Buffer{})
	assert.Equal(t, 2, code)
}
