package types

// Direction selects which side of a managed pair is the copy source.
type Direction int

const (
	// ToManager copies the live system copy into the manager directory.
	ToManager Direction = iota
	// ToSystem copies the manager copy out to the system location.
	ToSystem
)

// DirectionFromBool maps the CLI's "from manager" switch to a Direction.
func DirectionFromBool(toSystem bool) Direction {
	if toSystem {
		return ToSystem
	}
	return ToManager
}

func (d Direction) String() string {
	if d == ToSystem {
		return "manager->system"
	}
	return "system->manager"
}
