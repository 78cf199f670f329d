package geom

// Direction is one of the six axis-aligned directions.
// North is +Y, East is +X and Up is +Z.
type Direction int

// Directions.
const (
	North Direction = iota
	South
	East
	West
	Up
	Down
)

// Directions lists all six directions.
var Directions = []Direction{North, South, East, West, Up, Down}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	default:
		return d
	}
}
