package component

import (
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
)

// NodeComponent is a drifting target that pays out when its hp reaches zero
type NodeComponent struct {
	Type  state.NodeType
	HP    float64
	MaxHP float64
	// Size of the square hit polygon
	Size float64
	// Margin beyond the field edge before the node despawns unkilled
	Margin float64
}

// Alive reports whether the node still has hp
func (n *NodeComponent) Alive() bool { return n.HP > 0 }
