package reservation

type Status string

const (
	StatusHeld      Status = "held"
	StatusCommitted Status = "committed"
	StatusReleased  Status = "released"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusHeld, StatusCommitted, StatusReleased:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCommitted || s == StatusReleased
}
