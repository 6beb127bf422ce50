package game

// SpawnObstacle drops one vehicle above the visible top edge.
//
// Up to MaxSpawnAttempts random placements are tried; the first whose padded
// box is clear of all existing traffic wins. If every attempt collides the
// last candidate is placed anyway, so a call always adds exactly one obstacle.
func (w *World) SpawnObstacle() {
	var candidate Obstacle
	for attempt := 0; attempt < MaxSpawnAttempts; attempt++ {
		candidate = w.randomObstacle()
		if w.clearOfTraffic(candidate.Bounds().Inflate(SpawnPadding)) {
			break
		}
	}
	w.Obstacles = append(w.Obstacles, candidate)
}

func (w *World) randomObstacle() Obstacle {
	o := Obstacle{Kind: ObstacleKind(w.rng.Intn(int(obstacleKindCount)))}
	if o.Kind.Large() {
		o.W = w.rng.RangeF(44, 64)
		o.H = w.rng.RangeF(80, 120)
	} else {
		o.W = w.rng.RangeF(26, 48)
		o.H = w.rng.RangeF(44, 78)
	}
	o.X = w.rng.RangeF(RoadX+RoadInset, RoadX+RoadWidth-o.W-RoadInset)
	o.Y = -o.H - SpawnClearance - w.rng.RangeF(0, SpawnStaggerMax)
	return o
}

func (w *World) clearOfTraffic(r Rect) bool {
	for i := range w.Obstacles {
		if r.Overlaps(w.Obstacles[i].Bounds()) {
			return false
		}
	}
	return true
}
