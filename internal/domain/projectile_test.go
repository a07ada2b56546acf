package domain

import (
	"testing"

	"github.com/jakecoffman/cp/v2"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
)

func launchTestProjectile(t *testing.T, params LaunchParams) *Projectile {
	t.Helper()
	p := NewProjectile()
	p.Bind(types.PackEntityID(0, enums.KindProjectile, 1, 3))
	if err := p.Launch(params); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	return p
}

func TestProjectile_StraightFlight(t *testing.T) {
	p := launchTestProjectile(t, LaunchParams{
		Kind:     enums.ProjectileBullet,
		From:     cp.Vector{X: 0, Y: 40},
		Velocity: cp.Vector{X: 300, Y: 0},
		Damage:   12,
		Lifetime: 2000,
	})

	if alive := p.Advance(1000); !alive {
		t.Fatal("projectile expired too early")
	}
	if p.Pos.X != 300 || p.Pos.Y != 40 {
		t.Errorf("Pos = %v, want {300 40}", p.Pos)
	}
	// Без навесной траектории скорость не меняется.
	if p.Vel.Y != 0 {
		t.Errorf("Vel.Y = %v, want 0", p.Vel.Y)
	}
}

func TestProjectile_LifetimeExpiry(t *testing.T) {
	p := launchTestProjectile(t, LaunchParams{
		Kind:     enums.ProjectileBullet,
		Velocity: cp.Vector{X: 100, Y: 0},
		Lifetime: 100,
	})

	if alive := p.Advance(60); !alive {
		t.Fatal("60ms of 100ms lifetime must keep the projectile alive")
	}
	if alive := p.Advance(60); alive {
		t.Fatal("120ms of 100ms lifetime must expire the projectile")
	}

	p.Expire()
	if p.State() != ProjectileStateExpired {
		t.Errorf("State = %q, want expired", p.State())
	}
	if p.InFlight() {
		t.Error("expired projectile reports InFlight")
	}
}

func TestProjectile_ArcingTrajectory(t *testing.T) {
	p := launchTestProjectile(t, LaunchParams{
		Kind:      enums.ProjectileMissile,
		From:      cp.Vector{X: 0, Y: 0},
		Velocity:  cp.Vector{X: 100, Y: 100},
		Arcing:    true,
		AoERadius: 100,
		Lifetime:  10000,
	})

	// На взлете земля не засчитывается.
	p.Advance(100) // dt=0.1: Vel.Y = 100 - 90 = 10, Pos.Y = 1
	if p.HitGround() {
		t.Fatal("ascending missile reported HitGround")
	}

	// Гравитация разворачивает снаряд и роняет его в землю.
	p.Advance(500) // dt=0.5: Vel.Y = 10 - 450 = -440, Pos.Y = 1 - 220 = -219
	if p.Vel.Y >= 0 {
		t.Fatalf("Vel.Y = %v, want negative after gravity", p.Vel.Y)
	}
	if !p.HitGround() {
		t.Error("descending missile at ground level must report HitGround")
	}
}

func TestProjectile_PiercingHitSet(t *testing.T) {
	p := launchTestProjectile(t, LaunchParams{
		Kind:     enums.ProjectileBeam,
		Piercing: true,
		Lifetime: 1000,
	})

	a := types.PackEntityID(0, enums.KindEnemy, 1, 1)
	b := types.PackEntityID(0, enums.KindEnemy, 1, 2)

	if p.HasHit(a) {
		t.Fatal("fresh projectile claims to have hit enemy a")
	}
	p.MarkHit(a)
	if !p.HasHit(a) {
		t.Error("MarkHit(a) not visible through HasHit")
	}
	if p.HasHit(b) {
		t.Error("hit set leaked to enemy b")
	}

	// Пробивающий снаряд остается в полете после резолва попадания.
	if !p.InFlight() {
		t.Error("piercing projectile must stay in flight after marking hits")
	}
}

func TestProjectile_HitSetResetBetweenFlights(t *testing.T) {
	p := launchTestProjectile(t, LaunchParams{
		Kind:     enums.ProjectileBeam,
		Piercing: true,
		Lifetime: 1000,
	})

	a := types.PackEntityID(0, enums.KindEnemy, 1, 1)
	p.MarkHit(a)

	p.Expire()
	p.OnRelease()
	if p.State() != ProjectileStateInactive {
		t.Fatalf("State after release = %q, want inactive", p.State())
	}

	if err := p.Launch(LaunchParams{Kind: enums.ProjectileBeam, Piercing: true, Lifetime: 1000}); err != nil {
		t.Fatalf("relaunch failed: %v", err)
	}
	if p.HasHit(a) {
		t.Error("hit set survived the trip through the pool")
	}
}

func TestProjectile_LaunchTwiceFails(t *testing.T) {
	p := launchTestProjectile(t, LaunchParams{
		Kind:     enums.ProjectileBullet,
		Lifetime: 1000,
	})

	if err := p.Launch(LaunchParams{Kind: enums.ProjectileBullet, Lifetime: 1000}); err == nil {
		t.Error("Launch on a flying projectile must fail")
	}
}

func TestProjectile_ResolveHitStopsFlight(t *testing.T) {
	p := launchTestProjectile(t, LaunchParams{
		Kind:     enums.ProjectileBullet,
		Velocity: cp.Vector{X: 100, Y: 0},
		Lifetime: 1000,
	})

	p.ResolveHit()
	if p.State() != ProjectileStateHit {
		t.Errorf("State = %q, want hit", p.State())
	}
	if p.Advance(16) {
		t.Error("projectile in hit state must not advance")
	}
}
