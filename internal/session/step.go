package session

import (
	"github.com/vovakirdan/tui-dash/internal/core"
)

// lead is the screen x of world x = 0 when the run starts.
func (s *Session) lead() float64 {
	return s.cfg.View.WorldWidth + spawnMargin
}

// screenX converts a level world x to the current view x.
func (s *Session) screenX(worldX float64) float64 {
	return s.lead() + worldX - s.run.distance
}

// playerWorldX is the level world x under the player's left edge.
func (s *Session) playerWorldX() float64 {
	if s.spec == nil {
		return 0
	}
	return s.spec.PlayerX() - s.lead() + s.run.distance
}

func (s *Session) playerBox() core.Box {
	size := s.cfg.Player.Size
	return core.NewBox(s.spec.PlayerX(), s.spec.FloorY()+s.run.playerY, size, size)
}

func (s *Session) obstacleBox(i int) core.Box {
	p := s.run.placements[i]
	return core.NewBox(s.screenX(p.X), s.spec.FloorY(), p.Width, s.cfg.Obstacles.Height)
}

func (s *Session) coinBox(i int) core.Box {
	c := s.run.coins[i]
	size := s.cfg.Coins.Size
	return core.NewBox(s.screenX(c.X)-size/2, s.spec.FloorY()+c.Y-size/2, size, size)
}

func (s *Session) queueJump() {
	s.run.jumpBuffer = s.cfg.Physics.JumpBuffer
	s.tryJump()
}

func (s *Session) tryJump() {
	r := &s.run
	if r.jumpBuffer <= 0 {
		return
	}
	if r.onGround || r.coyote > 0 {
		r.velY = s.cfg.Physics.JumpVelocity
		r.onGround = false
		r.coyote = 0
		r.jumpBuffer = 0
	}
}

// step advances one playing tick.
func (s *Session) step(dt float64) {
	r := &s.run
	phys := s.cfg.Physics

	r.elapsed += dt
	r.speed = r.difficulty.Speed(r.baseSpeed, r.distance, r.elapsed)
	r.distance += r.speed * dt

	// Vertical motion
	r.velY -= phys.Gravity * dt
	r.playerY += r.velY * dt
	if r.playerY <= 0 && r.velY <= 0 {
		r.playerY = 0
		r.velY = 0
		r.onGround = true
		r.coyote = phys.CoyoteTime
	} else {
		r.onGround = false
		r.coyote = max(0, r.coyote-dt)
	}
	r.jumpBuffer = max(0, r.jumpBuffer-dt)
	s.tryJump()
	s.fadeEffects(dt)

	s.collectCoins()
	s.passPortals()

	// The default fall limit sits below the floor, so only tuned configs
	// that raise it above floor_y reach the second check.
	if s.hitObstacle() || s.spec.FloorY()+r.playerY < phys.FallLimit {
		r.shake = shakeTime
		s.apply(EventDie)
		return
	}

	if r.finish > 0 && s.playerWorldX() > r.finish {
		s.apply(EventClear)
	}
}

// fadeEffects counts down the coin sparkles and the death shake.
func (s *Session) fadeEffects(dt float64) {
	r := &s.run
	for i, t := range r.sparkles {
		if t > 0 {
			r.sparkles[i] = max(0, t-dt)
		}
	}
	r.shake = max(0, r.shake-dt)
}

func (s *Session) collectCoins() {
	r := &s.run
	player := s.playerBox()
	for i := range r.coins {
		if r.collected[i] {
			continue
		}
		if player.Overlaps(s.coinBox(i)) {
			r.collected[i] = true
			r.sparkles[i] = sparkleTime
			r.coinCount++
			r.coinPoints += s.cfg.Coins.Points
		}
	}
}

func (s *Session) passPortals() {
	r := &s.run
	center := s.spec.PlayerX() + s.cfg.Player.Size/2
	for r.nextPortal < len(r.portals) && s.screenX(r.portals[r.nextPortal].X) <= center {
		r.baseSpeed = r.portals[r.nextPortal].Speed
		r.nextPortal++
	}
}

// hitObstacle checks obstacles near the player. Placements are sorted and do
// not overlap, so everything before nextObstacle is already behind the player.
func (s *Session) hitObstacle() bool {
	r := &s.run
	player := s.playerBox()
	for i := r.nextObstacle; i < len(r.placements); i++ {
		box := s.obstacleBox(i)
		if box.Right() <= player.X {
			r.nextObstacle = i + 1
			continue
		}
		if box.X >= player.Right() {
			break
		}
		if player.Overlaps(box) {
			return true
		}
	}
	return false
}
