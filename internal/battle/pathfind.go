package battle

import (
	"container/heap"

	"tactics-server/internal/domain"
)

// Четыре направления обхода: диагоналей в тактическом ядре нет.
var steps = [4]struct{ dx, dy int }{
	{0, -1}, // север
	{1, 0},  // восток
	{0, 1},  // юг
	{-1, 0}, // запад
}

// MoveRange возвращает клетки, достижимые юнитом за его бюджет MOV.
//
// BFS с глобальным visited: клетка входима, если она в границах, проходима,
// перепад высот шага не превышает JMP юнита и на ней не стоит другой живой
// юнит. Стартовая клетка в результат не входит.
func (s *State) MoveRange(unitID domain.UnitID) []Position {
	u := s.Unit(unitID)
	if u == nil || !u.Alive() {
		return nil
	}

	type node struct {
		pos  Position
		cost int
	}

	visited := map[Position]bool{u.Pos: true}
	queue := []node{{pos: u.Pos}}
	result := make([]Position, 0)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.cost == u.Stats.MOV {
			continue // бюджет исчерпан, дальше не раскрываем
		}

		fromTile := s.Map.TileAt(cur.pos)
		for _, st := range steps {
			next := cur.pos.Shift(st.dx, st.dy)
			if visited[next] {
				continue
			}
			// Visited отмечаем только для входимых клеток: клетка,
			// недоступная отсюда по высоте, может быть доступна с другой стороны.
			if !s.enterable(u, fromTile, next) {
				continue
			}
			visited[next] = true
			result = append(result, next)
			queue = append(queue, node{pos: next, cost: cur.cost + 1})
		}
	}
	return result
}

// enterable проверяет один шаг перемещения: границы, проходимость,
// перепад высот и занятость другим живым юнитом.
func (s *State) enterable(u *domain.Unit, from *domain.Tile, to Position) bool {
	tile := s.Map.TileAt(to)
	if tile == nil || !tile.Passable {
		return false
	}
	if from != nil && abs(tile.Height-from.Height) > u.Stats.JMP {
		return false
	}
	if occ := s.LivingUnitAt(to); occ != nil && occ.ID != u.ID {
		return false
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// --- A* ---

// maxExpansionsFactor ограничивает поиск: карта width*height клеток
// раскрывается не более чем по 4 раза каждая.
const maxExpansionsFactor = 4

// PathResult — найденный маршрут start..end включительно.
// Fallback=true означает, что поиск упёрся в лимит итераций и маршрут
// интерполирован по прямой: он НЕ проверен на коллизии, вызывающая
// сторона (аниматор) должна относиться к нему как к черновику.
type PathResult struct {
	Points   []Position
	Fallback bool
}

// pathItem — элемент открытого списка A*.
type pathItem struct {
	pos   Position
	f     int // cost + эвристика
	g     int // стоимость от старта
	seq   int // порядок вставки, тай-брейк при равном f
	index int // индекс в куче (нужен для heap.Fix)
}

type pathQueue []*pathItem

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x interface{}) {
	item := x.(*pathItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[0 : n-1]
	return item
}

// FindPath ищет кратчайший маршрут A* по тем же правилам проходимости,
// что и MoveRange, с манхэттенской эвристикой.
//
// Особые случаи:
//   - start == end даёт одноточечный маршрут;
//   - занятая клетка проходима, только если на ней стоит сам идущий юнит
//     или это конечная точка (семантика "встать на освобождаемую клетку");
//   - при исчерпании лимита итераций возвращается прямолинейный fallback.
func (s *State) FindPath(start, end Position) PathResult {
	if start == end {
		return PathResult{Points: []Position{start}}
	}

	mover := s.LivingUnitAt(start)

	open := make(pathQueue, 0)
	heap.Init(&open)

	startItem := &pathItem{pos: start, f: start.ManhattanTo(end)}
	heap.Push(&open, startItem)

	cameFrom := make(map[Position]Position)
	gScore := map[Position]int{start: 0}
	closed := make(map[Position]bool)

	seq := 1
	expansions := 0
	limit := maxExpansionsFactor * s.Map.Width() * s.Map.Height()

	for open.Len() > 0 {
		expansions++
		if expansions > limit {
			return PathResult{Points: interpolateLine(start, end), Fallback: true}
		}

		cur := heap.Pop(&open).(*pathItem)
		if cur.pos == end {
			return PathResult{Points: reconstruct(cameFrom, end)}
		}
		if closed[cur.pos] {
			continue
		}
		closed[cur.pos] = true

		fromTile := s.Map.TileAt(cur.pos)
		for _, st := range steps {
			next := cur.pos.Shift(st.dx, st.dy)
			if closed[next] || !s.traversable(mover, fromTile, next, end) {
				continue
			}

			g := cur.g + 1
			if known, ok := gScore[next]; ok && g >= known {
				continue
			}
			gScore[next] = g
			cameFrom[next] = cur.pos

			heap.Push(&open, &pathItem{
				pos: next,
				g:   g,
				f:   g + next.ManhattanTo(end),
				seq: seq,
			})
			seq++
		}
	}

	// Маршрута нет — честный fallback по прямой, помеченный флагом.
	return PathResult{Points: interpolateLine(start, end), Fallback: true}
}

// traversable — правило проходимости для A*.
func (s *State) traversable(mover *domain.Unit, from *domain.Tile, to, end Position) bool {
	tile := s.Map.TileAt(to)
	if tile == nil || !tile.Passable {
		return false
	}
	if mover != nil && from != nil && abs(tile.Height-from.Height) > mover.Stats.JMP {
		return false
	}
	if occ := s.LivingUnitAt(to); occ != nil {
		isSelf := mover != nil && occ.ID == mover.ID
		if !isSelf && to != end {
			return false
		}
	}
	return true
}

func reconstruct(cameFrom map[Position]Position, end Position) []Position {
	path := []Position{end}
	cur := end
	for {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	// Разворачиваем: собирали от конца к старту.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// interpolateLine строит прямолинейный маршрут: сначала выбирается X,
// потом Y. Без проверок коллизий — используется только как fallback.
func interpolateLine(start, end Position) []Position {
	points := []Position{start}
	cur := start
	for cur.X != end.X {
		cur = cur.Shift(sign(end.X-cur.X), 0)
		points = append(points, cur)
	}
	for cur.Y != end.Y {
		cur = cur.Shift(0, sign(end.Y-cur.Y))
		points = append(points, cur)
	}
	return points
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
