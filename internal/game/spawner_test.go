package game

import "testing"

func TestSpawnObstacleStaysOnRoadAboveScreen(t *testing.T) {
	w := NewWorld(42)
	for i := 0; i < 200; i++ {
		w.Obstacles = w.Obstacles[:0]
		w.SpawnObstacle()
		if len(w.Obstacles) != 1 {
			t.Fatalf("spawn added %d obstacles, want 1", len(w.Obstacles))
		}
		o := w.Obstacles[0]
		if o.X < RoadX+RoadInset || o.X+o.W > RoadX+RoadWidth-RoadInset {
			t.Fatalf("obstacle %+v outside road band", o)
		}
		if o.Y+o.H > -SpawnClearance {
			t.Fatalf("obstacle %+v visible at spawn", o)
		}
		if o.Kind.Large() {
			if o.W < 44 || o.W >= 64 || o.H < 80 || o.H >= 120 {
				t.Fatalf("large obstacle %+v outside truck band", o)
			}
		} else if o.W < 26 || o.W >= 48 || o.H < 44 || o.H >= 78 {
			t.Fatalf("obstacle %+v outside car band", o)
		}
	}
}

func TestSpawnObstacleAvoidsExistingTraffic(t *testing.T) {
	w := NewWorld(3)
	for i := 0; i < 4; i++ {
		w.SpawnObstacle()
	}
	for i := range w.Obstacles {
		a := w.Obstacles[i].Bounds().Inflate(SpawnPadding)
		for j := range w.Obstacles {
			if i != j && a.Overlaps(w.Obstacles[j].Bounds()) {
				t.Fatalf("obstacles %d and %d overlap with padding: %+v %+v", i, j, w.Obstacles[i], w.Obstacles[j])
			}
		}
	}
}

func TestSpawnObstacleFallsBackWhenRoadIsBlocked(t *testing.T) {
	w := NewWorld(9)
	// One slab covering the whole spawn area leaves no clear slot.
	w.Obstacles = append(w.Obstacles, Obstacle{X: 0, Y: -400, W: WorldWidth, H: 400})
	w.SpawnObstacle()
	if len(w.Obstacles) != 2 {
		t.Fatalf("blocked spawn left %d obstacles, want 2", len(w.Obstacles))
	}
	if !w.Obstacles[1].Bounds().Overlaps(w.Obstacles[0].Bounds()) {
		t.Fatalf("fallback placement unexpectedly found a clear slot")
	}
}
