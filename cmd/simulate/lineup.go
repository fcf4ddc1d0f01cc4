package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/sim"
)

// defaultLineup matches the stock arena content
var defaultLineup = []string{
	"red:wolf@0,0",
	"red:ogre@0,2",
	"blue:spitter@12,0",
	"blue:shaman@12,2",
}

// parsePlacement reads team:template@x,y
func parsePlacement(raw string) (sim.Placement, error) {
	team, rest, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || team == "" {
		return sim.Placement{}, fmt.Errorf("placement %q: expected team:template@x,y", raw)
	}
	template, coords, ok := strings.Cut(rest, "@")
	if !ok || template == "" {
		return sim.Placement{}, fmt.Errorf("placement %q: expected team:template@x,y", raw)
	}
	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return sim.Placement{}, fmt.Errorf("placement %q: position needs x,y", raw)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return sim.Placement{}, fmt.Errorf("placement %q: bad x: %w", raw, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return sim.Placement{}, fmt.Errorf("placement %q: bad y: %w", raw, err)
	}

	return sim.Placement{
		Template: template,
		Team:     shared.TeamID(team),
		At:       shared.Point{X: x, Y: y},
	}, nil
}

func parseLineup(raw []string) ([]sim.Placement, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("lineup is empty")
	}
	out := make([]sim.Placement, 0, len(raw))
	for _, r := range raw {
		p, err := parsePlacement(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
