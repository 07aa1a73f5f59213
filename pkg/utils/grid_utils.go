package utils

// TileGrid 屏幕上一个 Size×Size 的方格区域（滑块拼图棋盘）
// 位置按行优先编号：pos = row*Size + col
type TileGrid struct {
	OriginX, OriginY float64 // 左上角屏幕坐标
	CellSize         float64 // 每格边长（含间隙）
	Gap              float64 // 格子之间的间隙
	Size             int     // 边长（格数）
}

// NewTileGrid 在给定区域内放置边长为 size 的棋盘
//
// 参数：
//   - originX, originY: 左上角屏幕坐标
//   - extent: 棋盘总边长（像素）
//   - gap: 格子间隙
//   - size: 边长（格数）
func NewTileGrid(originX, originY, extent, gap float64, size int) TileGrid {
	if size < 1 {
		size = 1
	}
	return TileGrid{
		OriginX:  originX,
		OriginY:  originY,
		CellSize: extent / float64(size),
		Gap:      gap,
		Size:     size,
	}
}

// CellAt 将指针屏幕坐标转换为棋盘位置
//
// 返回：
//   - pos: 位置索引 (0 ~ Size²-1)
//   - ok: 是否落在棋盘内
func (g TileGrid) CellAt(x, y int) (pos int, ok bool) {
	fx := float64(x) - g.OriginX
	fy := float64(y) - g.OriginY
	extent := g.Extent()
	if fx < 0 || fy < 0 || fx >= extent || fy >= extent {
		return 0, false
	}

	col := int(fx / g.CellSize)
	row := int(fy / g.CellSize)

	// 防止浮点误差导致越界
	if col >= g.Size {
		col = g.Size - 1
	}
	if row >= g.Size {
		row = g.Size - 1
	}
	return row*g.Size + col, true
}

// CellOrigin 返回位置 pos 的格子左上角坐标（已扣除半个间隙）
func (g TileGrid) CellOrigin(pos int) (x, y float64) {
	row, col := pos/g.Size, pos%g.Size
	x = g.OriginX + float64(col)*g.CellSize + g.Gap/2
	y = g.OriginY + float64(row)*g.CellSize + g.Gap/2
	return x, y
}

// TileSize 返回格子内图块的可见边长
func (g TileGrid) TileSize() float64 {
	return g.CellSize - g.Gap
}

// Extent 返回棋盘总边长
func (g TileGrid) Extent() float64 {
	return g.CellSize * float64(g.Size)
}
