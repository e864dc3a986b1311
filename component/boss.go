package component

// BossComponent marks the single boss entity
// Pos in the paired KineticComponent is the top-left corner of the boss square
// Boss hp lives in the player's current level record so it survives a save
type BossComponent struct {
	Name  string
	Index int
	Size  float64
}
