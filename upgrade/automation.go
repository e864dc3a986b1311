package upgrade

import (
	"errors"
	"fmt"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
)

// ErrAlreadyOwned is returned when buying an automation node twice
var ErrAlreadyOwned = errors.New("already owned")

// AutomationNode is a one-time purchase in the automation tree
// Paid with prestige and lp, gated on its prerequisites
type AutomationNode struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Tagline      string   `json:"tagline"`
	CostPrestige float64  `json:"costPrestige"`
	CostLP       float64  `json:"costLP"`
	Prereqs      []string `json:"prereqs"`
	// Multiplier applied to the auto-attack interval
	Multiplier float64 `json:"multiplier"`
}

var automationNodes = []AutomationNode{
	{ID: "sync-core", Name: "Sync Core", Tagline: "Kickstarts automation (-8% interval)", CostPrestige: 2, CostLP: 3, Multiplier: 0.92},
	{ID: "signal-doubler", Name: "Signal Doubler", Tagline: "Split the control beam (-10%)", CostPrestige: 4, CostLP: 4, Prereqs: []string{"sync-core"}, Multiplier: 0.9},
	{ID: "frequency-gate", Name: "Frequency Gate", Tagline: "Phase locks cadence (-10%)", CostPrestige: 4, CostLP: 5, Prereqs: []string{"sync-core"}, Multiplier: 0.9},
	{ID: "servo-cluster", Name: "Servo Cluster", Tagline: "Staggered actuators (-8%)", CostPrestige: 6, CostLP: 7, Prereqs: []string{"signal-doubler"}, Multiplier: 0.92},
	{ID: "phase-weaver", Name: "Phase Weaver", Tagline: "Braids both channels (-12%)", CostPrestige: 8, CostLP: 9, Prereqs: []string{"signal-doubler", "frequency-gate"}, Multiplier: 0.88},
	{ID: "quantum-latch", Name: "Quantum Latch", Tagline: "Stabilises drift (-10%)", CostPrestige: 8, CostLP: 9, Prereqs: []string{"frequency-gate"}, Multiplier: 0.9},
	{ID: "tachyon-loop", Name: "Tachyon Loop", Tagline: "Propels cadence (-18%)", CostPrestige: 12, CostLP: 13, Prereqs: []string{"servo-cluster", "phase-weaver"}, Multiplier: 0.82},
	{ID: "singularity-array", Name: "Singularity Array", Tagline: "Locks temporal echo (-15%)", CostPrestige: 12, CostLP: 13, Prereqs: []string{"phase-weaver", "quantum-latch"}, Multiplier: 0.85},
	{ID: "autonomy-core", Name: "Autonomy Core", Tagline: "Full automation (-25%)", CostPrestige: 18, CostLP: 18, Prereqs: []string{"tachyon-loop", "singularity-array"}, Multiplier: 0.75},
}

// Automation returns the automation tree in declaration order
func (c *Catalog) Automation() []AutomationNode {
	out := make([]AutomationNode, len(c.automation))
	copy(out, c.automation)
	return out
}

// AutomationUnlocked reports whether every prerequisite of n is owned
func AutomationUnlocked(n AutomationNode, p *state.Player) bool {
	for _, id := range n.Prereqs {
		if !p.Automation[id] {
			return false
		}
	}
	return true
}

// PurchaseAutomation buys an automation node, spending prestige and lp
func (c *Catalog) PurchaseAutomation(id string, p *state.Player) error {
	i, ok := c.autoIndex[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUpgrade, id)
	}
	n := c.automation[i]
	if p.Automation[id] {
		return ErrAlreadyOwned
	}
	if !AutomationUnlocked(n, p) {
		return ErrRequirements
	}
	if p.Prestige < n.CostPrestige || p.LP < n.CostLP {
		return ErrInsufficientFunds
	}

	p.Prestige -= n.CostPrestige
	p.LP -= n.CostLP
	if p.Automation == nil {
		p.Automation = make(map[string]bool)
	}
	p.Automation[id] = true
	return nil
}

// Feature is a purchasable unlock of a game section
type Feature string

const (
	FeatureCrypto      Feature = "crypto"
	FeatureLab         Feature = "lab"
	FeatureFasterNodes Feature = "faster-nodes"
)

// Unlock buys access to a feature; unlocking twice is a no-op
func Unlock(f Feature, p *state.Player) error {
	switch f {
	case FeatureCrypto:
		if p.CryptoUnlocked {
			return nil
		}
		if p.Bits < parameter.CryptoUnlockCostBitsFloat {
			return ErrInsufficientFunds
		}
		p.Bits -= parameter.CryptoUnlockCostBitsFloat
		p.CryptoUnlocked = true
	case FeatureLab:
		if p.LabUnlocked {
			return nil
		}
		if p.Cryptcoins < parameter.LabUnlockCostCryptcoinsFloat {
			return ErrInsufficientFunds
		}
		p.Cryptcoins -= parameter.LabUnlockCostCryptcoinsFloat
		p.LabUnlocked = true
	case FeatureFasterNodes:
		if p.SpawnUnlocked {
			return nil
		}
		if p.Prestige < parameter.SpawnUnlockCostPrestigeFloat {
			return ErrInsufficientFunds
		}
		p.Prestige -= parameter.SpawnUnlockCostPrestigeFloat
		p.SpawnUnlocked = true
	default:
		return fmt.Errorf("unknown feature %q", f)
	}
	return nil
}
