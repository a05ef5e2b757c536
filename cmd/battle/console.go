package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/rpgbattle/internal/game/combat"
	"github.com/cory-johannsen/rpgbattle/internal/game/roster"
	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
)

// Console is the line-oriented presentation layer for one battle.
//
// Commands are "<ability> <target name>", "status", "help", and "quit".
type Console struct {
	battle *combat.Battle
	in     *bufio.Scanner
	out    io.Writer
}

// NewConsole binds battle to the given input and output streams.
func NewConsole(battle *combat.Battle, in io.Reader, out io.Writer) *Console {
	return &Console{battle: battle, in: bufio.NewScanner(in), out: out}
}

// Run starts the battle and reads commands until it concludes, input ends,
// the player quits, or ctx is cancelled.
//
// Postcondition: Recoverable command errors are printed and re-prompted;
// only unexpected engine errors are returned.
func (c *Console) Run(ctx context.Context) error {
	res, err := c.battle.Start(ctx)
	if err != nil {
		return err
	}
	c.print(res.Text)

	for !res.Concluded() {
		if ctx.Err() != nil {
			return nil
		}
		c.prompt()
		if !c.in.Scan() {
			return c.in.Err()
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}

		verb, rest, _ := strings.Cut(line, " ")
		switch strings.ToLower(verb) {
		case "quit", "exit":
			c.print("You flee the battle.")
			return nil
		case "status":
			c.status()
			continue
		case "help":
			c.help()
			continue
		}

		next, err := c.execute(ctx, verb, strings.TrimSpace(rest))
		switch {
		case err == nil:
			res = next
			c.print(res.Text)
		case errors.Is(err, combat.ErrInvalidCommand),
			errors.Is(err, combat.ErrInvalidTarget),
			errors.Is(err, combat.ErrInsufficientMP):
			c.print(err.Error())
		default:
			return err
		}
	}
	return nil
}

func (c *Console) execute(ctx context.Context, ability, targetName string) (combat.Result, error) {
	var target *unit.Unit
	if targetName != "" {
		t, ok := roster.Find(c.battle.Participants(), targetName)
		if !ok {
			return combat.Result{}, fmt.Errorf("%w: no one called %q", combat.ErrInvalidTarget, targetName)
		}
		target = t
	}
	return c.battle.Execute(ctx, strings.ToLower(ability), target)
}

func (c *Console) prompt() {
	if cur := c.battle.CurrentAttacker(); cur != nil {
		fmt.Fprintf(c.out, "%s> ", cur.Name)
	}
}

func (c *Console) status() {
	order := c.battle.Order()
	for i := len(order) - 1; i >= 0; i-- {
		u := order[i]
		line := fmt.Sprintf("%-12s L%-3d HP %d/%d", u.Name, u.Level, u.HP, u.MaxHP)
		if u.IsHero() {
			line += fmt.Sprintf("  MP %d/%d  XP %d/%d", u.MP, u.MaxMP, u.XP, u.XPForNextLevel())
		}
		c.print(line)
	}
}

func (c *Console) help() {
	cur := c.battle.CurrentAttacker()
	if cur == nil {
		return
	}
	var names []string
	for _, a := range combat.Abilities(cur) {
		names = append(names, a.Name)
	}
	c.print(fmt.Sprintf("%s can use: %s", cur.Name, strings.Join(names, ", ")))
}

func (c *Console) print(text string) {
	if text != "" {
		fmt.Fprintln(c.out, text)
	}
}
