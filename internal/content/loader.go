// Package content loads YAML content packs: creature templates, skill
// definitions and rule tables.
package content

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/creature-battler/internal/domain/combat"
	"github.com/KirkDiggler/creature-battler/internal/domain/damage"
	"github.com/KirkDiggler/creature-battler/internal/domain/delegates"
	domainEffects "github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/rules"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
)

// Loader turns YAML into validated packs
type Loader struct {
	registry   *rules.Registry
	behaviours *Behaviours
}

// LoaderConfig holds the dependencies of a Loader
type LoaderConfig struct {
	Registry   *rules.Registry
	Behaviours *Behaviours
}

// NewLoader creates a loader. Behaviours default to the stock library.
func NewLoader(cfg *LoaderConfig) *Loader {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if cfg.Registry == nil {
		panic("rules registry is required")
	}
	behaviours := cfg.Behaviours
	if behaviours == nil {
		behaviours = DefaultBehaviours()
	}
	return &Loader{
		registry:   cfg.Registry,
		behaviours: behaviours,
	}
}

// LoadFiles loads and merges several files in order. References may cross
// files.
func (l *Loader) LoadFiles(paths ...string) (*Pack, error) {
	pack := newPack()
	for _, path := range paths {
		next, err := l.openAndDecode(path)
		if err != nil {
			return nil, err
		}
		if err := pack.Merge(next); err != nil {
			return nil, battleErr.Wrapf(err, "failed to merge %s", path)
		}
	}
	if err := pack.validateReferences(); err != nil {
		return nil, err
	}
	return pack, nil
}

// LoadFile reads one YAML file
func (l *Loader) LoadFile(path string) (*Pack, error) {
	pack, err := l.openAndDecode(path)
	if err != nil {
		return nil, err
	}
	if err := pack.validateReferences(); err != nil {
		return nil, battleErr.Wrapf(err, "failed to load %s", path).WithMeta("path", path)
	}
	return pack, nil
}

// Load decodes and validates one document
func (l *Loader) Load(r io.Reader) (*Pack, error) {
	pack, err := l.decode(r)
	if err != nil {
		return nil, err
	}
	if err := pack.validateReferences(); err != nil {
		return nil, err
	}
	return pack, nil
}

func (l *Loader) openAndDecode(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, battleErr.Wrapf(err, "failed to open content %s", path)
	}
	defer f.Close()

	pack, err := l.decode(f)
	if err != nil {
		return nil, battleErr.Wrapf(err, "failed to load %s", path).WithMeta("path", path)
	}
	return pack, nil
}

// decode builds a pack from one document without checking references.
// Unknown fields are rejected.
func (l *Loader) decode(r io.Reader) (*Pack, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, battleErr.WrapWithCode(err, battleErr.CodeValidation, "failed to decode content")
	}

	pack := newPack()

	for i := range doc.Skills {
		sd := &doc.Skills[i]
		def, chain, err := l.buildSkill(sd)
		if err != nil {
			return nil, invalid(err, "skill", sd.Key)
		}
		if _, exists := pack.Skills[def.Key]; exists {
			return nil, battleErr.AlreadyExistsf("skill %s defined twice", def.Key)
		}
		pack.Skills[def.Key] = def
		pack.skillChains[def.Key] = chain
	}

	for i := range doc.Creatures {
		cd := &doc.Creatures[i]
		t, err := l.buildCreature(cd)
		if err != nil {
			return nil, invalid(err, "creature", cd.Key)
		}
		if _, exists := pack.Creatures[t.Key]; exists {
			return nil, battleErr.AlreadyExistsf("creature %s defined twice", t.Key)
		}
		pack.Creatures[t.Key] = t
	}

	seen := make(map[string]bool, len(doc.Rules))
	for i := range doc.Rules {
		rd := &doc.Rules[i]
		rule, err := l.buildRule(rd)
		if err != nil {
			return nil, invalid(err, "rule", rd.ID)
		}
		if seen[rule.ID] {
			return nil, battleErr.AlreadyExistsf("rule %s defined twice", rule.ID)
		}
		seen[rule.ID] = true
		pack.rules = append(pack.rules, rule)
	}
	return pack, nil
}

func invalid(err error, section, key string) error {
	if battleErr.IsConfiguration(err) {
		return battleErr.Wrapf(err, "%s %s", section, key).
			WithMeta("section", section).
			WithMeta("key", key)
	}
	return battleErr.WrapWithCode(err, battleErr.CodeValidation, fmt.Sprintf("%s %s", section, key)).
		WithMeta("section", section).
		WithMeta("key", key)
}

// validateReferences checks cross-references once every section is known
func (p *Pack) validateReferences() error {
	for _, key := range p.CreatureKeys() {
		t := p.Creatures[key]
		for _, skill := range t.Skills {
			if _, ok := p.Skills[skill]; !ok {
				return battleErr.Validationf("creature %s uses unknown skill %s", key, skill).
					WithMeta("key", key)
			}
		}
		for _, d := range t.Chain.Delegates() {
			if summon, ok := d.(SummonOnDeath); ok {
				if _, found := p.Creatures[summon.Template]; !found {
					return battleErr.Validationf("creature %s summons unknown template %s", key, summon.Template).
						WithMeta("key", key)
				}
			}
		}
	}
	for _, rule := range p.rules {
		for _, action := range rule.Actions {
			switch a := action.(type) {
			case rules.DisableRule:
				if !p.hasRule(a.RuleID) {
					return battleErr.Validationf("rule %s disables unknown rule %s", rule.ID, a.RuleID)
				}
			case rules.ApplyEffects:
				for _, e := range a.Effects {
					if err := p.validateEffect(rule.ID, e); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func (p *Pack) validateEffect(ruleID string, e domainEffects.Effect) error {
	if delayed, ok := e.(domainEffects.Delayed); ok {
		e = delayed.Effect
	}
	if spawn, ok := e.(domainEffects.CreateCreature); ok {
		if _, found := p.Creatures[spawn.Template]; !found {
			return battleErr.Validationf("rule %s spawns unknown template %s", ruleID, spawn.Template)
		}
	}
	return nil
}

func (p *Pack) hasRule(id string) bool {
	for _, r := range p.rules {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (l *Loader) buildSkill(sd *skillDoc) (*combat.SkillDefinition, *delegates.Chain, error) {
	if sd.Key == "" {
		return nil, nil, fmt.Errorf("key is required")
	}
	category, err := combat.ParseCategory(sd.Category)
	if err != nil {
		return nil, nil, err
	}
	ranges, err := parseRanges(sd.Damage)
	if err != nil {
		return nil, nil, err
	}
	mods, err := parseModifiers(sd.Stats, sd.Modifiers)
	if err != nil {
		return nil, nil, err
	}
	list, err := l.buildBehaviours(sd.Behaviours)
	if err != nil {
		return nil, nil, err
	}
	chain, err := combat.NewSkillChain(list...)
	if err != nil {
		return nil, nil, err
	}

	name := sd.Name
	if name == "" {
		name = sd.Key
	}
	return &combat.SkillDefinition{
		Key:       sd.Key,
		Name:      name,
		Category:  category,
		Damage:    ranges,
		Modifiers: mods,
		Delegates: list,
	}, chain, nil
}

func (l *Loader) buildCreature(cd *creatureDoc) (*CreatureTemplate, error) {
	if cd.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	mods, err := parseModifiers(cd.Stats, cd.Modifiers)
	if err != nil {
		return nil, err
	}
	list, err := l.buildBehaviours(cd.Behaviours)
	if err != nil {
		return nil, err
	}
	chain, err := combat.NewCreatureChain(list...)
	if err != nil {
		return nil, err
	}

	name := cd.Name
	if name == "" {
		name = cd.Key
	}
	return &CreatureTemplate{
		Key:       cd.Key,
		Name:      name,
		Modifiers: mods,
		Skills:    append([]string(nil), cd.Skills...),
		Chain:     chain,
	}, nil
}

func (l *Loader) buildBehaviours(docs []behaviourDoc) ([]delegates.Delegate, error) {
	out := make([]delegates.Delegate, 0, len(docs))
	for _, bd := range docs {
		d, err := l.behaviours.Build(bd.Name, bd.Params)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// parseRanges reads {physical: "6-10", fire: "3"}
func parseRanges(raw map[string]string) (damage.Ranges, error) {
	ranges := make(damage.Ranges, len(raw))
	for typeText, text := range raw {
		t, err := damage.ParseType(typeText)
		if err != nil {
			return nil, err
		}
		lowText, highText, isRange := strings.Cut(strings.TrimSpace(text), "-")
		if !isRange {
			highText = lowText
		}
		low, err := strconv.Atoi(strings.TrimSpace(lowText))
		if err != nil {
			return nil, fmt.Errorf("invalid %s damage %q", t, text)
		}
		high, err := strconv.Atoi(strings.TrimSpace(highText))
		if err != nil {
			return nil, fmt.Errorf("invalid %s damage %q", t, text)
		}
		if low < 0 || high < low {
			return nil, fmt.Errorf("invalid %s damage range %d-%d", t, low, high)
		}
		ranges[t] = damage.Range{Low: low, High: high}
	}
	return ranges, nil
}

// parseModifiers turns base stat overrides and explicit modifiers into
// per-stat lists. Overrides come first, in stat ID order.
func parseModifiers(base map[string]string, explicit []modifierDoc) (map[stats.ID][]stats.Modifier, error) {
	out := make(map[stats.ID][]stats.Modifier)

	names := make([]string, 0, len(base))
	for name := range base {
		names = append(names, name)
	}
	sort.Strings(names)

	type override struct {
		id   stats.ID
		mods []stats.Modifier
	}
	overrides := make([]override, 0, len(names))
	for _, name := range names {
		def, ok := stats.LookupName(name)
		if !ok {
			return nil, fmt.Errorf("unknown stat %q", name)
		}
		mods, err := stats.ParseBase(def.ID, base[name])
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", def.Name, err)
		}
		overrides = append(overrides, override{id: def.ID, mods: mods})
	}
	sort.SliceStable(overrides, func(i, j int) bool { return overrides[i].id < overrides[j].id })
	for _, o := range overrides {
		out[o.id] = append(out[o.id], o.mods...)
	}

	for i, md := range explicit {
		id, m, err := parseModifier(md)
		if err != nil {
			return nil, fmt.Errorf("modifier %d: %w", i, err)
		}
		out[id] = append(out[id], m)
	}
	return out, nil
}

func parseModifier(md modifierDoc) (stats.ID, stats.Modifier, error) {
	def, ok := stats.LookupName(md.Stat)
	if !ok {
		return 0, stats.Modifier{}, fmt.Errorf("unknown stat %q", md.Stat)
	}
	opText := md.Op
	if opText == "" {
		opText = "add"
	}
	op, err := stats.ParseOp(opText)
	if err != nil {
		return 0, stats.Modifier{}, err
	}

	var m stats.Modifier
	switch op {
	case stats.OpIncrease:
		// increases are always percentages of the folded value
		bp, err := stats.ParseBasisPoints(md.Value)
		if err != nil {
			return 0, stats.Modifier{}, err
		}
		m = stats.Increase(int(bp))
	case stats.OpSetTrue, stats.OpSetFalse:
		m = stats.Modifier{Op: op}
	default:
		v, err := stats.ParseValue(def.ID, md.Value)
		if err != nil {
			return 0, stats.Modifier{}, err
		}
		m = stats.Modifier{Op: op, Value: v}
	}

	if md.Type != "" {
		if def.Kind != stats.KindTagged {
			return 0, stats.Modifier{}, fmt.Errorf("stat %s does not take a damage type", def.Name)
		}
		t, err := damage.ParseType(md.Type)
		if err != nil {
			return 0, stats.Modifier{}, err
		}
		m = m.For(t)
	}
	return def.ID, m, nil
}

func (l *Loader) buildRule(rd *ruleDoc) (*rules.Rule, error) {
	if rd.ID == "" {
		return nil, fmt.Errorf("id is required")
	}
	event, err := rules.ParseEvent(rd.Event)
	if err != nil {
		return nil, err
	}

	rule := &rules.Rule{
		ID:       rd.ID,
		Event:    event,
		OneTime:  rd.OneTime,
		Disabled: rd.Disabled,
	}

	for i, cd := range rd.When {
		cond, err := l.buildCondition(cd)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		rule.Conditions = append(rule.Conditions, cond)
	}
	for i, ad := range rd.Then {
		action, err := buildAction(ad)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		rule.Actions = append(rule.Actions, action)
	}
	if len(rule.Actions) == 0 {
		return nil, fmt.Errorf("rule has no actions")
	}
	return rule, nil
}

func (l *Loader) buildCondition(cd conditionDoc) (rules.Condition, error) {
	switch {
	case cd.Expr != "" && cd.Variable != "":
		return nil, fmt.Errorf("expr and variable are mutually exclusive")
	case cd.Expr != "":
		return rules.NewExpressionCondition(l.registry, cd.Expr)
	case cd.Variable != "":
		return rules.VariableEquals{Name: cd.Variable, Value: cd.Equals}, nil
	default:
		return nil, fmt.Errorf("condition needs expr or variable")
	}
}

func buildAction(ad actionDoc) (rules.Action, error) {
	var (
		action rules.Action
		count  int
	)
	if ad.Set != nil {
		if ad.Set.Name == "" {
			return nil, fmt.Errorf("set needs a name")
		}
		action = rules.SetVariable{Name: ad.Set.Name, Value: ad.Set.Value}
		count++
	}
	if ad.Increment != nil {
		if ad.Increment.Name == "" {
			return nil, fmt.Errorf("increment needs a name")
		}
		by := ad.Increment.By
		if by == 0 {
			by = 1
		}
		action = rules.IncrementVariable{Name: ad.Increment.Name, By: by}
		count++
	}
	if ad.Disable != "" {
		action = rules.DisableRule{RuleID: ad.Disable}
		count++
	}
	if len(ad.Effects) > 0 {
		list := make([]domainEffects.Effect, 0, len(ad.Effects))
		for i, ed := range ad.Effects {
			e, err := buildEffect(ed)
			if err != nil {
				return nil, fmt.Errorf("effect %d: %w", i, err)
			}
			list = append(list, e)
		}
		action = rules.ApplyEffects{Effects: list}
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("action must set exactly one of set, increment, disable or effects")
	}
	return action, nil
}

func buildEffect(ed effectDoc) (domainEffects.Effect, error) {
	var (
		effect domainEffects.Effect
		count  int
	)
	if ed.Spawn != nil {
		if ed.Spawn.Template == "" || ed.Spawn.Team == "" {
			return nil, fmt.Errorf("spawn needs template and team")
		}
		effect = domainEffects.CreateCreature{
			Template: ed.Spawn.Template,
			Team:     shared.TeamID(ed.Spawn.Team),
			At:       point(ed.Spawn.At),
		}
		count++
	}
	if ed.Heal != nil {
		if ed.Heal.Target == "" || ed.Heal.Amount <= 0 {
			return nil, fmt.Errorf("heal needs a target and a positive amount")
		}
		effect = domainEffects.Heal{Target: shared.EntityID(ed.Heal.Target), Amount: ed.Heal.Amount}
		count++
	}
	if ed.Damage != nil {
		if ed.Damage.Target == "" || ed.Damage.Amount <= 0 {
			return nil, fmt.Errorf("damage needs a target and a positive amount")
		}
		effect = domainEffects.ApplyDamage{
			Source: shared.EntityID(ed.Damage.Source),
			Target: shared.EntityID(ed.Damage.Target),
			Amount: ed.Damage.Amount,
		}
		count++
	}
	if ed.Stun != nil {
		d, err := time.ParseDuration(ed.Stun.Duration)
		if err != nil || d <= 0 || ed.Stun.Target == "" {
			return nil, fmt.Errorf("stun needs a target and a positive duration")
		}
		effect = domainEffects.Stun{Target: shared.EntityID(ed.Stun.Target), Duration: d}
		count++
	}
	if ed.Event != nil {
		kind, err := parseEventKind(ed.Event.Kind)
		if err != nil {
			return nil, err
		}
		effect = domainEffects.PlayEvent{Event: kind, At: point(ed.Event.At)}
		count++
	}
	if ed.Status != nil {
		status, err := buildStatus(ed.Status)
		if err != nil {
			return nil, err
		}
		effect = domainEffects.SpawnStatusEffect{Target: shared.EntityID(ed.Status.Target), Status: status}
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("effect must set exactly one kind")
	}

	if ed.Delay != "" {
		d, err := time.ParseDuration(ed.Delay)
		if err != nil {
			return nil, fmt.Errorf("invalid delay %q", ed.Delay)
		}
		effect = domainEffects.After(d, effect)
	}
	return effect, nil
}

func buildStatus(sd *statusDoc) (domainEffects.Status, error) {
	if sd.Target == "" || sd.Name == "" {
		return domainEffects.Status{}, fmt.Errorf("status needs target and name")
	}
	status := domainEffects.Status{
		Name:     sd.Name,
		Stacking: domainEffects.StackingReplace,
	}
	if sd.Duration != "" {
		d, err := time.ParseDuration(sd.Duration)
		if err != nil {
			return domainEffects.Status{}, fmt.Errorf("invalid status duration %q", sd.Duration)
		}
		status.Duration = d
	}
	if sd.Stacking != "" {
		switch rule := domainEffects.StackingRule(sd.Stacking); rule {
		case domainEffects.StackingReplace, domainEffects.StackingStack,
			domainEffects.StackingRefresh, domainEffects.StackingIgnore:
			status.Stacking = rule
		default:
			return domainEffects.Status{}, fmt.Errorf("unknown stacking rule %q", sd.Stacking)
		}
	}
	for i, md := range sd.Changes {
		id, m, err := parseModifier(md)
		if err != nil {
			return domainEffects.Status{}, fmt.Errorf("change %d: %w", i, err)
		}
		status.Changes = append(status.Changes, domainEffects.StatChange{Stat: id, Modifier: m})
	}
	return status, nil
}

func parseEventKind(s string) (domainEffects.EventKind, error) {
	switch k := domainEffects.EventKind(s); k {
	case domainEffects.EventMissed, domainEffects.EventEvade, domainEffects.EventCrit, domainEffects.EventStun:
		return k, nil
	default:
		return "", fmt.Errorf("unknown event kind %q", s)
	}
}

func point(p pointDoc) shared.Point {
	return shared.Point{X: p.X, Y: p.Y}
}
