package config

// 布局配置常量
// 本文件定义窗口尺寸以及拼图棋盘、文字面板的位置

// 窗口
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600
)

// 滑块拼图棋盘
const (
	// PuzzleOriginX 棋盘左上角 X 坐标
	PuzzleOriginX = 420.0

	// PuzzleOriginY 棋盘左上角 Y 坐标
	PuzzleOriginY = 140.0

	// PuzzleExtent 棋盘总边长，格子大小 = PuzzleExtent / 边长
	PuzzleExtent = 330.0

	// PuzzleTileGap 图块之间的间隙
	PuzzleTileGap = 4.0
)

// 文字面板
const (
	// TextMarginX 左侧文字起始 X 坐标
	TextMarginX = 16

	// TextMarginY 第一行文字的 Y 坐标
	TextMarginY = 16

	// TextLineHeight 调试字体的行高
	TextLineHeight = 16
)
