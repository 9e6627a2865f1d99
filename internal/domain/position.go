package domain

// Position — целочисленная координата клетки на поле боя.
// Сравнение — строго по значению.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ManhattanTo возвращает манхэттенское расстояние |dx|+|dy|.
// Вся дальность в боевом ядре (атаки, заклинания) считается именно так.
func (p Position) ManhattanTo(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// Shift возвращает новую позицию со смещением, не меняя текущую.
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction — сторона света, куда повёрнут юнит.
type Direction uint8

const (
	DirectionNorth Direction = iota
	DirectionEast
	DirectionSouth
	DirectionWest
)

var directionNames = map[Direction]string{
	DirectionNorth: "NORTH",
	DirectionEast:  "EAST",
	DirectionSouth: "SOUTH",
	DirectionWest:  "WEST",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "UNKNOWN"
}

// DirectionOf вычисляет направление по вектору перемещения from -> to.
// Берём доминирующую ось; при равенстве |dx| == |dy| приоритет у горизонтали.
// Нулевое смещение сохраняет прежнее направление (возвращаем fallback).
func DirectionOf(from, to Position, fallback Direction) Direction {
	dx := to.X - from.X
	dy := to.Y - from.Y

	if dx == 0 && dy == 0 {
		return fallback
	}

	if abs(dx) >= abs(dy) {
		if dx > 0 {
			return DirectionEast
		}
		return DirectionWest
	}
	if dy > 0 {
		return DirectionSouth
	}
	return DirectionNorth
}
