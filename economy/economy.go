// Package economy runs the two idle sinks: the crypto mine, which converts
// deposited bits into cryptcoins over a bounded window, and the lab, which
// turns deposited cryptcoins into breach progress paid out in prestige.
package economy

import (
	"errors"
	"math"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/reward"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
)

var (
	ErrLocked            = errors.New("feature locked")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotReady          = errors.New("breach not ready")
)

func validAmount(amount, balance float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > balance {
		return ErrInsufficientFunds
	}
	return nil
}

// DepositCrypto moves bits into the mine and restarts its window
// synergy is the resolved crypto synergy bonus added to the rate
func DepositCrypto(p *state.Player, amount, synergy float64) error {
	if !p.CryptoUnlocked {
		return ErrLocked
	}
	if err := validAmount(amount, p.Bits); err != nil {
		return err
	}
	p.Bits -= amount
	c := &p.Crypto
	c.Deposit += amount
	c.Rate = math.Sqrt(c.Deposit)/parameter.CryptoRateDivisorFloat + math.Max(0, synergy)
	c.TimeRemaining = math.Max(parameter.CryptoMinDurationFloat, math.Log(c.Deposit+1)*parameter.CryptoDurationLogFactorFloat)
	return nil
}

// WithdrawCrypto returns the deposit as bits and stops the mine
// Returns the amount refunded
func WithdrawCrypto(p *state.Player) float64 {
	amount := p.Crypto.Deposit
	if amount <= 0 {
		return 0
	}
	p.Bits += amount
	p.Crypto = state.Crypto{}
	return amount
}

// TickCrypto accrues cryptcoins for dt seconds
// The deposit is consumed when the window runs out
func TickCrypto(p *state.Player, dt float64) float64 {
	c := &p.Crypto
	if c.Deposit <= 0 || c.Rate <= 0 || dt <= 0 {
		return 0
	}
	c.TimeRemaining = math.Max(0, c.TimeRemaining-dt)
	generated := c.Rate * dt
	p.Cryptcoins += generated
	if c.TimeRemaining <= 0 {
		c.Deposit = 0
		c.Rate = 0
	}
	return generated
}

// DepositLab moves cryptcoins into the lab and recomputes its speed
func DepositLab(p *state.Player, amount float64, anomalyLevels int) error {
	if !p.LabUnlocked {
		return ErrLocked
	}
	if err := validAmount(amount, p.Cryptcoins); err != nil {
		return err
	}
	p.Cryptcoins -= amount
	l := &p.Lab
	l.Deposited += amount
	l.Speed = math.Sqrt(l.Deposited)/parameter.LabSpeedDivisorFloat + float64(max(0, anomalyLevels))*parameter.LabAnomalySpeedFloat
	return nil
}

// TickLab advances breach progress, capped at the threshold
func TickLab(p *state.Player, dt float64) {
	if !p.LabUnlocked || p.Lab.Speed <= 0 || dt <= 0 {
		return
	}
	p.Lab.Progress = math.Min(parameter.LabBreachThresholdFloat, p.Lab.Progress+p.Lab.Speed*dt)
}

// LabReady reports whether a breach can be triggered
func LabReady(p *state.Player) bool {
	return p.Lab.Progress >= parameter.LabBreachThresholdFloat
}

// Breach pays out a full lab and resets it
// The caller credits the returned grant
func Breach(p *state.Player) (reward.Grant, error) {
	if !LabReady(p) {
		return reward.Grant{}, ErrNotReady
	}
	p.Lab = state.Lab{}
	return reward.Grant{Prestige: parameter.LabBreachPrestigeFloat}, nil
}
