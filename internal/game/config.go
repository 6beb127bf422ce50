package game

// World dimensions (in world pixels).
// Portrait playfield; the road runs top to bottom.
const (
	WorldWidth  = 420
	WorldHeight = 700
)

// Road band (in world pixels).
const (
	RoadMargin = 60
	RoadX      = RoadMargin
	RoadWidth  = WorldWidth - 2*RoadMargin // 300
	RoadInset  = 6                         // keeps cars off the kerb
)

// Player car.
const (
	PlayerWidth    = 34.0
	PlayerHeight   = 56.0
	PlayerSpeed    = 360.0 // px/s, applied instantly
	PlayerBaseline = 90.0  // distance from the bottom edge
	MaxFrameDelta  = 0.033
	ScorePerSecond = 120.0
)

// Spawner.
const (
	MaxSpawnAttempts = 12
	SpawnPadding     = 6.0
	PairSpawnChance  = 0.18
	SpawnStaggerMax  = 60.0
	SpawnClearance   = 10.0
	ObstacleCull     = 80.0 // removed once this far below the bottom edge
)

// Scrolling scenery.
const (
	ScrollSpeed      = 240.0
	DashGap          = 32
	DashLength       = 12
	DashWidth        = 4
	DashWrap         = 40.0
	RoadsideGap      = 120
	RoadsideWrap     = 120.0
	RoadsideJitter   = 40.0
	RoadsidePairOdds = 0.45
)

// Difficulty ramp.
const (
	RampWindow           = 60.0 // seconds until maximum difficulty
	InitialSpawnInterval = 1.2
	MinSpawnInterval     = 0.35
	InitialObstacleSpeed = 200.0
	MaxObstacleSpeed     = 380.0
	DifficultyLevels     = 10
)
