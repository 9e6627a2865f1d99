package domain

// Tile — одна клетка поля боя.
// Создаётся при построении карты (height=0, passable=true) и меняется
// только через сеттеры GridMap (террейн уровня, скриптовые события).
type Tile struct {
	Pos      Position `json:"pos"`
	Height   int      `json:"height"`
	Passable bool     `json:"passable"`
}

// GridMap — прямоугольное поле фиксированного размера.
// Владеет ровно width*height тайлами; форма неизменна после конструктора.
//
// Тайлы лежат в плоском слайсе с индексом y*width+x — доступ по позиции
// это самый горячий путь ядра, он обязан быть O(1).
type GridMap struct {
	width  int
	height int
	tiles  []Tile
}

// NewGridMap создает карту width x height с проходимыми тайлами нулевой высоты.
func NewGridMap(width, height int) *GridMap {
	tiles := make([]Tile, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tiles[y*width+x] = Tile{
				Pos:      Position{X: x, Y: y},
				Passable: true,
			}
		}
	}
	return &GridMap{width: width, height: height, tiles: tiles}
}

func (m *GridMap) Width() int  { return m.width }
func (m *GridMap) Height() int { return m.height }

// InBounds проверяет, лежит ли позиция внутри карты.
func (m *GridMap) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < m.width && pos.Y >= 0 && pos.Y < m.height
}

// index предполагает, что границы уже проверены.
func (m *GridMap) index(pos Position) int {
	return pos.Y*m.width + pos.X
}

// TileAt возвращает тайл по позиции или nil, если позиция вне карты.
func (m *GridMap) TileAt(pos Position) *Tile {
	if !m.InBounds(pos) {
		return nil
	}
	return &m.tiles[m.index(pos)]
}

// SetTileHeight задаёт высоту тайла. Вне карты — no-op.
func (m *GridMap) SetTileHeight(pos Position, height int) {
	if !m.InBounds(pos) {
		return
	}
	m.tiles[m.index(pos)].Height = height
}

// SetTilePassable задаёт проходимость тайла. Вне карты — no-op.
func (m *GridMap) SetTilePassable(pos Position, passable bool) {
	if !m.InBounds(pos) {
		return
	}
	m.tiles[m.index(pos)].Passable = passable
}

// Tiles возвращает все тайлы в стабильном порядке (row-major).
// Слайс общий с картой: читать можно, менять — через сеттеры.
func (m *GridMap) Tiles() []Tile {
	return m.tiles
}
