package game

const (
	InitialCount  = 25
	CircleRadius  = 15.0
	ShrinkRate    = 0.5 // radius lost per tick once popped
	MaxSpeed      = 3.0 // per axis, px/tick
	StrokeWidth   = 4.0
	GlowBlur      = 20.0
	ScoreOffsetX  = 250.0 // from the right edge
	ScoreY        = 90.0
	ScoreFontSize = 20.0
	ScoreLabel    = "Ball Count: %d"
)
