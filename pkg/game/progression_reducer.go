package game

import (
	"errors"
	"fmt"
)

// Reduce 返回的错误。Store 会把它们记为警告并吞掉，不会传到界面层。
var (
	ErrUnknownRoom      = errors.New("unknown room")
	ErrUnknownFragment  = errors.New("unknown fragment")
	ErrUnknownMilestone = errors.New("unknown milestone")
	ErrUnknownCommand   = errors.New("unknown command")
)

// Reduce 对状态应用一条命令，返回新的状态
//
// 纯函数：不修改输入，不做 I/O。
// 非法输入返回原状态和一个哨兵错误；重复命令（再次解锁、再次收集）
// 返回原状态且没有错误，Version 不变。
// 除两个开关外，所有标记都是单向的，没有任何命令能把它们变回 false。
func Reduce(s State, cmd Command) (State, error) {
	switch cmd.Type {
	case CmdSetScene:
		if s.scene == cmd.Scene {
			return s, nil
		}
		s.scene = cmd.Scene

	case CmdUnlockRoom:
		if !s.HasRoom(cmd.Room) {
			return s, fmt.Errorf("%w: %q", ErrUnknownRoom, cmd.Room)
		}
		if s.unlocked[cmd.Room] {
			return s, nil
		}
		s.unlocked = cloneMap(s.unlocked)
		s.unlocked[cmd.Room] = true

	case CmdCompleteRoom:
		if !s.HasRoom(cmd.Room) {
			return s, fmt.Errorf("%w: %q", ErrUnknownRoom, cmd.Room)
		}
		if s.completed[cmd.Room] {
			return s, nil
		}
		s.completed = cloneMap(s.completed)
		s.completed[cmd.Room] = true

	case CmdCollectFragment:
		index := -1
		for i, f := range s.fragments {
			if f.ID == cmd.FragmentID {
				index = i
				break
			}
		}
		if index < 0 {
			return s, fmt.Errorf("%w: %d", ErrUnknownFragment, cmd.FragmentID)
		}
		if s.fragments[index].Collected {
			return s, nil
		}
		s.fragments = append([]Fragment(nil), s.fragments...)
		s.fragments[index].Collected = true

	case CmdRevealPhoto:
		if s.photoRevealed {
			return s, nil
		}
		s.photoRevealed = true

	case CmdToggleTreeLights:
		s.treeLightsOn = !s.treeLightsOn

	case CmdToggleFireplace:
		s.fireplaceOn = !s.fireplaceOn

	case CmdUnlockGift:
		if s.gift.MainGiftUnlocked {
			return s, nil
		}
		s.gift.MainGiftUnlocked = true

	case CmdOpenGift:
		if s.gift.Opened {
			return s, nil
		}
		s.gift.Opened = true

	case CmdMarkMilestone:
		reached, known := s.milestones[cmd.Milestone]
		if !known {
			return s, fmt.Errorf("%w: %q", ErrUnknownMilestone, cmd.Milestone)
		}
		if reached {
			return s, nil
		}
		s.milestones = cloneMap(s.milestones)
		s.milestones[cmd.Milestone] = true

	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}

	s.version++
	return s, nil
}
