package stats

import "time"

// Stat IDs. Values are stable because snapshots persist them.
const (
	IDMaxHealth ID = iota + 1
	IDAccuracy
	IDEvasion
	IDCritChance
	IDCritMultiplier
	IDReceiveCritsBonus
	IDDamageReduction
	IDMaxDamageReduction
	IDDamageResistance
	IDMaxDamageResistance
	IDMeleeDamageMultiplier
	IDProjectileDamageMultiplier
	IDHealthDrain
	IDStunChance
	IDMaxStunChance
	IDStunDuration
	IDMaxMeleeAreaTargets
	IDCooldown
	IDProjectileDelay
	IDMultiShotCount
	IDMultiShotDelay
	IDChainCount
	IDRadius
	IDKnockback
	IDUsesAccuracy
	IDCanCrit
	IDCanStun
	IDIgnoresDamageReduction
	IDIgnoresDamageResistance
)

// Creature and skill stats. Skill instances read through the owning
// creature's table, so any of these may be set at either level.
var (
	MaxHealth = newIntStat(IDMaxHealth, "MaxHealth", 100)
	Accuracy  = newIntStat(IDAccuracy, "Accuracy", 100)
	Evasion   = newIntStat(IDEvasion, "Evasion", 0)

	CritChance        = newBasisPointsStat(IDCritChance, "CritChance", 500)
	CritMultiplier    = newBasisPointsStat(IDCritMultiplier, "CritMultiplier", 15000)
	ReceiveCritsBonus = newBasisPointsStat(IDReceiveCritsBonus, "ReceiveCritsBonus", 0)

	DamageReduction     = newTaggedStat(IDDamageReduction, "DamageReduction")
	MaxDamageReduction  = newBasisPointsStat(IDMaxDamageReduction, "MaxDamageReduction", 5000)
	DamageResistance    = newTaggedStat(IDDamageResistance, "DamageResistance")
	MaxDamageResistance = newBasisPointsStat(IDMaxDamageResistance, "MaxDamageResistance", 7500)

	MeleeDamageMultiplier      = newBasisPointsStat(IDMeleeDamageMultiplier, "MeleeDamageMultiplier", 10000)
	ProjectileDamageMultiplier = newBasisPointsStat(IDProjectileDamageMultiplier, "ProjectileDamageMultiplier", 10000)

	HealthDrain = newBasisPointsStat(IDHealthDrain, "HealthDrain", 0)

	StunChance    = newBasisPointsStat(IDStunChance, "StunChance", 0)
	MaxStunChance = newBasisPointsStat(IDMaxStunChance, "MaxStunChance", 5000)
	StunDuration  = newDurationStat(IDStunDuration, "StunDuration", time.Second)

	MaxMeleeAreaTargets = newIntStat(IDMaxMeleeAreaTargets, "MaxMeleeAreaTargets", 0)

	Cooldown        = newDurationStat(IDCooldown, "Cooldown", time.Second)
	ProjectileDelay = newDurationStat(IDProjectileDelay, "ProjectileDelay", 0)
	MultiShotCount  = newIntStat(IDMultiShotCount, "MultiShotCount", 1)
	MultiShotDelay  = newDurationStat(IDMultiShotDelay, "MultiShotDelay", 100*time.Millisecond)
	ChainCount      = newIntStat(IDChainCount, "ChainCount", 0)
	Radius          = newIntStat(IDRadius, "Radius", 1)
	Knockback       = newIntStat(IDKnockback, "Knockback", 0)

	UsesAccuracy            = newFlagStat(IDUsesAccuracy, "UsesAccuracy", true)
	CanCrit                 = newFlagStat(IDCanCrit, "CanCrit", true)
	CanStun                 = newFlagStat(IDCanStun, "CanStun", false)
	IgnoresDamageReduction  = newFlagStat(IDIgnoresDamageReduction, "IgnoresDamageReduction", false)
	IgnoresDamageResistance = newFlagStat(IDIgnoresDamageResistance, "IgnoresDamageResistance", false)
)
