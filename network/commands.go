package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/game"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/progress"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/upgrade"
)

// ErrUnknownCommand is returned for an unrecognized op
var ErrUnknownCommand = errors.New("unknown command")

// ErrBadArgument is returned when a command's kind is not understood
var ErrBadArgument = errors.New("bad argument")

// Apply runs cmd against s and returns the data for its result
// It must be called from the goroutine that owns s
func Apply(ctx context.Context, s *game.Session, cmd Command) (any, error) {
	switch cmd.Op {
	case "pointer":
		s.SetPointer(cmd.X, cmd.Y, cmd.Inside)
		return nil, nil

	case "purchase":
		return nil, s.AttemptPurchase(cmd.ID)
	case "automation":
		return nil, s.PurchaseAutomation(cmd.ID)
	case "unlock":
		return nil, s.Unlock(upgrade.Feature(cmd.ID))

	case "resolve":
		return s.ResolveSkillCheck().String(), nil

	case "continue":
		return nil, s.Continue()
	case "replay":
		return nil, s.Replay()
	case "jump":
		return s.JumpToLevel(cmd.Index), nil

	case "claim":
		switch cmd.Kind {
		case "milestone":
			return s.ClaimMilestone(cmd.ID)
		case "achievement":
			return s.ClaimAchievement(cmd.ID)
		case "all":
			return s.ClaimAllAchievements(), nil
		}
		return nil, fmt.Errorf("%w: claim kind %q", ErrBadArgument, cmd.Kind)

	case "deposit":
		switch cmd.Kind {
		case "crypto":
			return nil, s.DepositCrypto(cmd.Amount)
		case "lab":
			return nil, s.DepositLab(cmd.Amount)
		}
		return nil, fmt.Errorf("%w: deposit kind %q", ErrBadArgument, cmd.Kind)
	case "withdraw":
		return s.WithdrawCrypto(), nil
	case "breach":
		return s.BreachLab()

	case "save":
		_, err := s.Save(ctx)
		return nil, err
	case "new-game":
		s.NewGame()
		return nil, nil

	case "state":
		return s.Snapshot(), nil
	case "stats":
		return s.Stats(), nil
	case "catalog":
		return s.Catalog().All(), nil
	case "goals":
		p := s.Snapshot()
		return map[string][]progress.Status{
			"milestones":   s.Tracker().Statuses(progress.KindMilestone, &p),
			"achievements": s.Tracker().Statuses(progress.KindAchievement, &p),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Op)
}
