package config

// DefaultPuzzleGridSize 滑块拼图的默认边长（3x3）
const DefaultPuzzleGridSize = 3

// 拼图类型名称（YAML 中使用）
const (
	PuzzleKindImage  = "image"
	PuzzleKindThemed = "themed"
)
