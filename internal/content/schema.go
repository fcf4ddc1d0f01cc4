package content

import (
	"gopkg.in/yaml.v3"
)

// document is one YAML content file
type document struct {
	Creatures []creatureDoc `yaml:"creatures"`
	Skills    []skillDoc    `yaml:"skills"`
	Rules     []ruleDoc     `yaml:"rules"`
}

type creatureDoc struct {
	Key        string            `yaml:"key"`
	Name       string            `yaml:"name"`
	Stats      map[string]string `yaml:"stats"`
	Modifiers  []modifierDoc     `yaml:"modifiers"`
	Behaviours []behaviourDoc    `yaml:"behaviours"`
	Skills     []string          `yaml:"skills"`
}

type skillDoc struct {
	Key        string            `yaml:"key"`
	Name       string            `yaml:"name"`
	Category   string            `yaml:"category"`
	Damage     map[string]string `yaml:"damage"`
	Stats      map[string]string `yaml:"stats"`
	Modifiers  []modifierDoc     `yaml:"modifiers"`
	Behaviours []behaviourDoc    `yaml:"behaviours"`
}

// modifierDoc is an explicit modifier, e.g. {stat: CritChance, op: increase, value: 10%}
type modifierDoc struct {
	Stat  string `yaml:"stat"`
	Op    string `yaml:"op"`
	Value string `yaml:"value"`
	Type  string `yaml:"type"`
}

// behaviourDoc accepts either a bare name or {name, params}
type behaviourDoc struct {
	Name   string `yaml:"name"`
	Params Params `yaml:"params"`
}

func (b *behaviourDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		b.Name = node.Value
		return nil
	}
	type plain behaviourDoc
	return node.Decode((*plain)(b))
}

type ruleDoc struct {
	ID       string         `yaml:"id"`
	Event    string         `yaml:"event"`
	OneTime  bool           `yaml:"one_time"`
	Disabled bool           `yaml:"disabled"`
	When     []conditionDoc `yaml:"when"`
	Then     []actionDoc    `yaml:"then"`
}

type conditionDoc struct {
	Expr     string `yaml:"expr"`
	Variable string `yaml:"variable"`
	Equals   any    `yaml:"equals"`
}

type actionDoc struct {
	Set       *setDoc       `yaml:"set"`
	Increment *incrementDoc `yaml:"increment"`
	Disable   string        `yaml:"disable"`
	Effects   []effectDoc   `yaml:"effects"`
}

type setDoc struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

type incrementDoc struct {
	Name string `yaml:"name"`
	By   int    `yaml:"by"`
}

type effectDoc struct {
	Delay  string     `yaml:"delay"`
	Spawn  *spawnDoc  `yaml:"spawn"`
	Heal   *healDoc   `yaml:"heal"`
	Damage *damageDoc `yaml:"damage"`
	Stun   *stunDoc   `yaml:"stun"`
	Event  *eventDoc  `yaml:"event"`
	Status *statusDoc `yaml:"status"`
}

type pointDoc struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type spawnDoc struct {
	Template string   `yaml:"template"`
	Team     string   `yaml:"team"`
	At       pointDoc `yaml:"at"`
}

type healDoc struct {
	Target string `yaml:"target"`
	Amount int    `yaml:"amount"`
}

type damageDoc struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Amount int    `yaml:"amount"`
}

type stunDoc struct {
	Target   string `yaml:"target"`
	Duration string `yaml:"duration"`
}

type eventDoc struct {
	Kind string   `yaml:"kind"`
	At   pointDoc `yaml:"at"`
}

type statusDoc struct {
	Target   string        `yaml:"target"`
	Name     string        `yaml:"name"`
	Duration string        `yaml:"duration"`
	Stacking string        `yaml:"stacking"`
	Changes  []modifierDoc `yaml:"changes"`
}
