package domain

// TargetKind различает виды цели способности.
type TargetKind uint8

const (
	TargetKindNone TargetKind = iota
	TargetKindUnit
	TargetKindPosition
)

// TargetRef — размеченный union "юнит или клетка".
// Диспетчеризация по Kind исчерпывающая, без runtime-угадывания формы.
type TargetRef struct {
	Kind   TargetKind
	UnitID UnitID
	Pos    Position
}

// UnitTarget строит ссылку на юнита.
func UnitTarget(id UnitID) TargetRef {
	return TargetRef{Kind: TargetKindUnit, UnitID: id}
}

// PositionTarget строит ссылку на клетку.
func PositionTarget(pos Position) TargetRef {
	return TargetRef{Kind: TargetKindPosition, Pos: pos}
}

// IsZero сообщает, что цель не задана.
func (t TargetRef) IsZero() bool {
	return t.Kind == TargetKindNone
}
