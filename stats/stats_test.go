package stats

import (
	"math"
	"testing"
)

func TestBaseValues(t *testing.T) {
	s := Base()
	if s.CritChance != 0.05 || s.CritMultiplier != 2 || s.NodeSpawnDelay != 2 || s.MaxNodes != 4 {
		t.Errorf("unexpected base snapshot: %+v", s)
	}
	if s.Damage != s.BaseDamage {
		t.Errorf("damage %v != baseDamage %v", s.Damage, s.BaseDamage)
	}
}

func TestLevelPressure(t *testing.T) {
	tests := []struct {
		index     int
		nodeHP    float64
		delay     float64
		bossHPFac float64
	}{
		{1, 1.03, 2, 1},
		{11, 1.33, 2 * 0.8, 1.5},
		{100, 4, 1, 3},
		{0, 1.03, 2, 1},
	}
	for _, tt := range tests {
		s := Base()
		s.ApplyLevelPressure(tt.index)
		if math.Abs(s.NodeHPFactor-tt.nodeHP) > 1e-9 {
			t.Errorf("index %d: nodeHPFactor %v, want %v", tt.index, s.NodeHPFactor, tt.nodeHP)
		}
		if math.Abs(s.NodeSpawnDelay-tt.delay) > 1e-9 {
			t.Errorf("index %d: spawn delay %v, want %v", tt.index, s.NodeSpawnDelay, tt.delay)
		}
		if math.Abs(s.BossHPFactor-tt.bossHPFac) > 1e-9 {
			t.Errorf("index %d: bossHPFactor %v, want %v", tt.index, s.BossHPFactor, tt.bossHPFac)
		}
	}
}

func TestFinalizeClamps(t *testing.T) {
	s := Base()
	s.NodeSpawnDelay = 0.001
	s.AutoInterval = 0
	s.PointerSize = 2
	s.MaxNodes = 0
	s.CritChance = 1.7
	s.BitCollectRadius = 10
	s.Finalize()

	if s.NodeSpawnDelay != 0.05 {
		t.Errorf("spawn delay %v, want 0.05", s.NodeSpawnDelay)
	}
	if s.AutoInterval != 0.08 {
		t.Errorf("auto interval %v, want 0.08", s.AutoInterval)
	}
	if s.PointerSize != 8 || s.MaxNodes != 1 || s.CritChance != 1 {
		t.Errorf("clamps not applied: %+v", s)
	}
	if s.CollectRadius != 14 {
		t.Errorf("collect radius %v, want 14", s.CollectRadius)
	}
}
