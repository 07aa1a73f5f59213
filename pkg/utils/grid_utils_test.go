package utils

import "testing"

// TestTileGridCellAt 测试指针坐标到棋盘位置的转换
func TestTileGridCellAt(t *testing.T) {
	grid := NewTileGrid(100, 50, 300, 4, 3)

	tests := []struct {
		name    string
		x, y    int
		wantPos int
		wantOK  bool
	}{
		{name: "左上角第一个格子", x: 100, y: 50, wantPos: 0, wantOK: true},
		{name: "第一行第三格", x: 100 + 250, y: 60, wantPos: 2, wantOK: true},
		{name: "中间格子", x: 100 + 150, y: 50 + 150, wantPos: 4, wantOK: true},
		{name: "右下角最后一个格子", x: 100 + 299, y: 50 + 299, wantPos: 8, wantOK: true},
		{name: "左侧外部", x: 99, y: 60, wantOK: false},
		{name: "上方外部", x: 150, y: 49, wantOK: false},
		{name: "右侧边界外", x: 400, y: 60, wantOK: false},
		{name: "下方边界外", x: 150, y: 350, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := grid.CellAt(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("CellAt(%d, %d) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
			if ok && pos != tt.wantPos {
				t.Errorf("CellAt(%d, %d) = %d, want %d", tt.x, tt.y, pos, tt.wantPos)
			}
		})
	}
}

// TestTileGridCellOrigin 格子坐标与 CellAt 互逆
func TestTileGridCellOrigin(t *testing.T) {
	grid := NewTileGrid(20, 30, 400, 8, 4)
	if grid.CellSize != 100 || grid.TileSize() != 92 || grid.Extent() != 400 {
		t.Fatalf("geometry: cell=%v tile=%v extent=%v", grid.CellSize, grid.TileSize(), grid.Extent())
	}

	for pos := 0; pos < 16; pos++ {
		x, y := grid.CellOrigin(pos)
		got, ok := grid.CellAt(int(x+1), int(y+1))
		if !ok || got != pos {
			t.Errorf("CellAt(CellOrigin(%d)) = %d, %v", pos, got, ok)
		}
	}

	x, y := grid.CellOrigin(5)
	if x != 20+100+4 || y != 30+100+4 {
		t.Errorf("CellOrigin(5) = (%v, %v), want (124, 134)", x, y)
	}
}

// TestNewTileGridClampsSize 非法边长被修正为 1
func TestNewTileGridClampsSize(t *testing.T) {
	grid := NewTileGrid(0, 0, 90, 0, 0)
	if grid.Size != 1 || grid.CellSize != 90 {
		t.Errorf("grid = %+v", grid)
	}
}
