package modules

import (
	"math"

	"github.com/jakecoffman/cp/v2"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/defs"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/events"
	"github.com/umutterol/hellcrawler-sub001/internal/systems"
)

// skillState - рантайм одного скилла.
type skillState struct {
	def               defs.SkillDef
	cooldownRemaining float64
	activeRemaining   float64
	active            bool
	autoTriggered     bool // активация пришла из авторежима
	autoMode          bool
	autoArmed         bool // кулдаун истек, авторежим вправе сработать один раз
}

// hooks - вариантные эффекты скиллов. core вызывает их на активации
// (в том числе автоматической) и на истечении длительности.
type hooks interface {
	onSkillActivate(idx int, now float64, candidates []*domain.Enemy, auto bool)
	onSkillEnd(idx int, candidates []*domain.Enemy)
}

// core - общая часть всех боевых модулей: таймеры скиллов, ритм
// стрельбы и формула урона. Композитный помощник, не база наследования:
// варианты встраивают его и отдают себя в self для обратных вызовов.
type core struct {
	def       defs.WeaponDef
	item      *domain.ModuleItem
	slotIndex int
	dir       enums.Direction
	origin    cp.Vector
	mults     SlotMults
	deps      Deps

	self hooks

	lastFireAt float64

	// Временные множители от активных скиллов. Единица - нейтрально.
	fireRateMult  float64
	damageMult    float64
	aoeMult       float64
	critChanceAdd float64

	skills []skillState
}

func newCore(def defs.WeaponDef, item *domain.ModuleItem, slotIndex int, dir enums.Direction, origin cp.Vector, mults SlotMults, deps Deps) *core {
	c := &core{
		def:          def,
		item:         item,
		slotIndex:    slotIndex,
		dir:          dir,
		origin:       origin,
		mults:        mults,
		deps:         deps,
		lastFireAt:   math.Inf(-1),
		fireRateMult: 1,
		damageMult:   1,
		aoeMult:      1,
	}
	c.skills = make([]skillState, len(def.Skills))
	for i, sd := range def.Skills {
		// Кулдауна при экипировке нет: скилл готов, авторежим взведен.
		c.skills[i] = skillState{def: sd, autoArmed: true}
	}
	return c
}

// --- Доступ ---

func (c *core) Class() enums.WeaponClass { return c.item.Class }
func (c *core) Item() *domain.ModuleItem { return c.item }
func (c *core) RefreshSlot(m SlotMults)  { c.mults = m }

func (c *core) Skills() []SkillView {
	out := make([]SkillView, len(c.skills))
	for i := range c.skills {
		s := &c.skills[i]
		out[i] = SkillView{
			Name:              s.def.Name,
			CooldownRemaining: s.cooldownRemaining,
			ActiveRemaining:   s.activeRemaining,
			Active:            s.active,
			AutoMode:          s.autoMode,
		}
	}
	return out
}

// --- Авторежим ---

func (c *core) ToggleAutoMode(idx int) bool {
	if idx < 0 || idx >= len(c.skills) {
		return false
	}
	c.skills[idx].autoMode = !c.skills[idx].autoMode
	return true
}

func (c *core) SetAutoMode(idx int, enabled bool) bool {
	if idx < 0 || idx >= len(c.skills) {
		return false
	}
	c.skills[idx].autoMode = enabled
	return true
}

// --- Скиллы ---

// ActivateSkill - общий гейт активации. Эффект делегируется варианту,
// таймеры и события ведет core. Кулдаун режется CDR слота и предмета.
func (c *core) ActivateSkill(idx int, now float64, candidates []*domain.Enemy, auto bool) bool {
	if idx < 0 || idx >= len(c.skills) {
		return false
	}
	s := &c.skills[idx]
	if s.cooldownRemaining > 0 || s.active {
		return false
	}

	c.self.onSkillActivate(idx, now, candidates, auto)

	if s.def.DurationMs > 0 {
		s.active = true
		s.activeRemaining = s.def.DurationMs
		s.autoTriggered = auto
	}

	cooldown := s.def.CooldownSec * 1000 * (1 - c.cdrFraction())
	if cooldown < 0 {
		cooldown = 0
	}
	s.cooldownRemaining = cooldown
	s.autoArmed = false

	c.deps.Bus.Emit(events.EventSkillActivated, events.SkillActivated{
		SlotIndex: c.slotIndex,
		SkillName: s.def.Name,
		AutoMode:  auto,
	})
	c.deps.Bus.Emit(events.EventSkillCooldownStarted, events.SkillCooldownStarted{
		SlotIndex:        c.slotIndex,
		SkillName:        s.def.Name,
		CooldownDuration: cooldown,
	})
	return true
}

// updateSkills двигает таймеры, закрывает истекшие длительности и
// отрабатывает авторежим. Порядок в кадре: таймеры раньше авто-проверок,
// выстрел менеджер вызывает после Update.
//
// Авторежим взводится только переходом кулдауна через ноль и гасится
// активацией: не больше одного срабатывания на истечение, даже если
// CDR уронил кулдаун в ноль.
func (c *core) updateSkills(now, delta float64, candidates []*domain.Enemy) {
	for i := range c.skills {
		s := &c.skills[i]

		if s.cooldownRemaining > 0 {
			s.cooldownRemaining -= delta
			if s.cooldownRemaining <= 0 {
				s.cooldownRemaining = 0
				s.autoArmed = true
				c.deps.Bus.Emit(events.EventSkillCooldownEnded, events.SkillCooldownEnded{
					SlotIndex: c.slotIndex,
					SkillName: s.def.Name,
				})
			}
		}

		if s.active {
			s.activeRemaining -= delta
			if s.activeRemaining <= 0 {
				s.activeRemaining = 0
				s.active = false
				s.autoTriggered = false
				c.self.onSkillEnd(i, candidates)
			}
		}
	}

	for i := range c.skills {
		s := &c.skills[i]
		if s.autoMode && s.autoArmed && !s.active && s.cooldownRemaining <= 0 {
			c.ActivateSkill(i, now, candidates, true)
		}
	}
}

// --- Стрельба ---

// cdrFraction - суммарный срез кулдауна слота и предмета, в [0, 1].
func (c *core) cdrFraction() float64 {
	cdr := c.mults.CDR + c.item.CDRBonus()
	if cdr < 0 {
		return 0
	}
	if cdr > 1 {
		return 1
	}
	return cdr
}

// effectiveFireInterval - мс между выстрелами со всеми множителями:
// скилловый темп, прокачка слота, бонус предмета.
func (c *core) effectiveFireInterval() float64 {
	rate := c.fireRateMult * c.mults.AttackSpeed * (1 + c.item.AttackSpeedBonus())
	if rate <= 0 {
		return math.Inf(1)
	}
	return c.def.FireIntervalMs / rate
}

func (c *core) canFire(now float64) bool {
	return now-c.lastFireAt >= c.effectiveFireInterval()
}

// pickTarget - общий ритм выстрела: гейт по времени, пустой список -
// no-op, цель по умолчанию ближайшая в пределах дальности.
func (c *core) pickTarget(now float64, candidates []*domain.Enemy) *domain.Enemy {
	if !c.canFire(now) || len(candidates) == 0 {
		return nil
	}
	return systems.Closest(c.origin, candidates, c.def.Range)
}

// autoPenaltyActive: хотя бы один активный скилл запущен авторежимом.
// Пока он идет, выстрелы несут штраф авторежима.
func (c *core) autoPenaltyActive() bool {
	for i := range c.skills {
		if c.skills[i].active && c.skills[i].autoTriggered {
			return true
		}
	}
	return false
}

// critChance - шанс крита с бонусом предмета и временными эффектами.
func (c *core) critChance() float64 {
	return c.def.CritChance + c.item.CritChanceBonus() + c.critChanceAdd
}

// calculateDamage - урон одного выстрела и флаг крита.
//
//	floor(base × (1+бонус предмета) × (1+уровень слота×0.01) ×
//	      крит × штраф авторежима × разброс 0.9..1.1)
//
// Порядок обращений к Rng фиксирован: сначала ролл крита, затем ролл
// разброса. Тесты с подставным источником опираются на этот порядок.
func (c *core) calculateDamage(autoTriggered bool) (int, bool) {
	dmg := float64(c.def.BaseDamage) * c.damageMult
	dmg *= 1 + c.item.DamageBonus()
	dmg *= c.mults.Damage

	isCrit := c.deps.Rng.Float64() < c.critChance()
	if isCrit {
		dmg *= domain.BaseCritMultiplier + c.item.CritDamageBonus()
	}
	if autoTriggered || c.autoPenaltyActive() {
		dmg *= domain.AutoModePenalty
	}
	dmg *= domain.DamageVarianceMin + c.deps.Rng.Float64()*(domain.DamageVarianceMax-domain.DamageVarianceMin)

	return int(math.Floor(dmg)), isCrit
}

// shot - параметры одного запуска снаряда.
type shot struct {
	kind     enums.ProjectileKind
	velocity cp.Vector
	piercing bool
	aoe      float64
	homing   types.EntityID
	arcing   bool
	auto     bool
}

// launchShot берет снаряд из пула и запускает его. Исчерпанный пул -
// пропуск выстрела: вызывающий не записывает время и может
// попробовать в следующем кадре.
func (c *core) launchShot(s shot) bool {
	proj := c.deps.Launcher.Acquire()
	if proj == nil {
		return false
	}

	dmg, isCrit := c.calculateDamage(s.auto)
	err := proj.Launch(domain.LaunchParams{
		Kind:      s.kind,
		From:      c.origin,
		Velocity:  s.velocity,
		Damage:    dmg,
		IsCrit:    isCrit,
		Piercing:  s.piercing,
		AoERadius: s.aoe * c.aoeMult,
		Homing:    s.homing,
		Arcing:    s.arcing,
		Lifetime:  c.def.ProjectileLifeMs,
		SlotIndex: c.slotIndex,
	})
	return err == nil
}

// straightVelocity - прямой полет в текущую позицию цели.
func (c *core) straightVelocity(target cp.Vector) cp.Vector {
	to := target.Sub(c.origin)
	if to.LengthSq() == 0 {
		return cp.Vector{X: c.def.ProjectileSpeed}
	}
	return to.Normalize().Mult(c.def.ProjectileSpeed)
}

// arcVelocity - навесная траектория. Горизонтальная скорость задана
// оружием, вертикальная подбирается так, чтобы снаряд пришел в точку
// цели по баллистике с гравитацией поля.
func (c *core) arcVelocity(target cp.Vector) cp.Vector {
	dx := target.X - c.origin.X
	dy := target.Y - c.origin.Y

	t := math.Abs(dx) / c.def.ProjectileSpeed
	if t < 0.1 {
		t = 0.1
	}
	return cp.Vector{
		X: dx / t,
		Y: dy/t + 0.5*domain.ArcGravity*t,
	}
}

// Detach по умолчанию ничего не снимает. Варианты с длящимися
// эффектами (замедления) переопределяют.
func (c *core) Detach() {}
