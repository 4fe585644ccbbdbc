package game

// Input is a discrete event from an input device.
type Input int

const (
	InputMoveLeft Input = iota
	InputMoveRight
	InputRotate
	InputSoftDrop
	InputHardDrop
	InputHold
	InputReleaseLeft
	InputReleaseRight
)

func (in Input) String() string {
	switch in {
	case InputMoveLeft:
		return "move-left"
	case InputMoveRight:
		return "move-right"
	case InputRotate:
		return "rotate"
	case InputSoftDrop:
		return "soft-drop"
	case InputHardDrop:
		return "hard-drop"
	case InputHold:
		return "hold"
	case InputReleaseLeft:
		return "release-left"
	case InputReleaseRight:
		return "release-right"
	}
	return "unknown"
}

// IsRelease reports whether in is a key-up event.
func (in Input) IsRelease() bool {
	return in == InputReleaseLeft || in == InputReleaseRight
}

type queuedInput struct {
	player Player
	input  Input
}
