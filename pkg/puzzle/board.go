// Package puzzle 实现滑块拼图的有效性引擎
//
// 棋盘是 N×N 的排列，值 0..N²-2 为图块，N²-1 为空格。
// 位置 k 上放着值 k 时即为还原状态。
// 本包只包含纯函数和一个轻量的会话包装，不依赖游戏状态，
// 图片拼图和主题拼图两种界面共用同一套规则。
package puzzle

import (
	"math/rand/v2"
)

const (
	// MinSize 最小边长；更小的棋盘没有"未还原"状态
	MinSize = 2

	// ConstructiveThreshold 边长大于该值时 Generate 改用合法移动打乱
	ConstructiveThreshold = 4

	// ShuffleMovesPerCell 合法移动打乱时每个格子对应的随机步数
	ShuffleMovesPerCell = 20
)

// Board 一个棋盘排列，Board[位置] = 图块值
type Board []int

// Solved 返回边长为 n 的还原棋盘
func Solved(n int) Board {
	b := make(Board, n*n)
	for i := range b {
		b[i] = i
	}
	return b
}

// Size 返回棋盘边长
func (b Board) Size() int {
	n := 0
	for n*n < len(b) {
		n++
	}
	return n
}

// BlankValue 返回空格的值（N²-1）
func (b Board) BlankValue() int {
	return len(b) - 1
}

// Blank 返回空格所在的位置，找不到时返回 -1
func (b Board) Blank() int {
	blank := b.BlankValue()
	for i, v := range b {
		if v == blank {
			return i
		}
	}
	return -1
}

// Clone 返回棋盘副本
func (b Board) Clone() Board {
	c := make(Board, len(b))
	copy(c, b)
	return c
}

// Equal 比较两个棋盘
func (b Board) Equal(other Board) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}

// Generate 生成一个可解且未还原的 n×n 棋盘
//
// 小棋盘对单位排列反复做 Fisher-Yates 洗牌，直到同时满足可解与未还原
// （期望约 2 次）；边长超过 ConstructiveThreshold 时改用 GenerateByMoves，
// 两种方式产生的棋盘都满足同样的两条不变式。
// n 小于 MinSize 时按 MinSize 处理。rng 为 nil 时使用全局随机源。
func Generate(n int, rng *rand.Rand) Board {
	if n < MinSize {
		n = MinSize
	}
	if n > ConstructiveThreshold {
		return GenerateByMoves(n, n*n*ShuffleMovesPerCell, rng)
	}

	b := Solved(n)
	for {
		shuffle(b, rng)
		if IsSolvable(b) && !IsSolved(b) {
			return b
		}
	}
}

// GenerateByMoves 从还原状态出发随机执行 moves 步合法移动
// 不会立即撤销上一步；结束时若恰好回到还原状态则继续移动
func GenerateByMoves(n, moves int, rng *rand.Rand) Board {
	if n < MinSize {
		n = MinSize
	}
	b := Solved(n)
	blank := len(b) - 1
	previous := -1

	for step := 0; step < moves || IsSolved(b); step++ {
		candidates := Neighbors(blank, n)
		if len(candidates) > 1 && previous >= 0 {
			filtered := candidates[:0]
			for _, c := range candidates {
				if c != previous {
					filtered = append(filtered, c)
				}
			}
			candidates = filtered
		}
		tile := candidates[intN(rng, len(candidates))]
		b[blank], b[tile] = b[tile], b[blank]
		previous = blank
		blank = tile
	}
	return b
}

// Inversions 统计非空格图块的逆序对数量
// 即 i<j 且 b[i]>b[j] 的位置对，两者都不是空格
func Inversions(b Board) int {
	blank := b.BlankValue()
	count := 0
	for i := 0; i < len(b); i++ {
		if b[i] == blank {
			continue
		}
		for j := i + 1; j < len(b); j++ {
			if b[j] != blank && b[i] > b[j] {
				count++
			}
		}
	}
	return count
}

// IsSolvable 判断棋盘能否通过合法移动还原
//
// 奇数边长：逆序数为偶数即可解（3×3 的情况）。
// 偶数边长：竖直移动会让逆序数改变 n-1（奇数），
// 因此要把空格距最后一行的行数计入奇偶性。
func IsSolvable(b Board) bool {
	n := b.Size()
	if n*n != len(b) || n < 1 {
		return false
	}
	inv := Inversions(b)
	if n%2 == 1 {
		return inv%2 == 0
	}
	blankRow := b.Blank() / n
	return (inv+(n-1-blankRow))%2 == 0
}

// IsSolved 每个位置上的值都等于位置下标时为还原状态
func IsSolved(b Board) bool {
	for i, v := range b {
		if v != i {
			return false
		}
	}
	return true
}

// IsAdjacent 两个位置在网格中上下或左右相邻（曼哈顿距离恰为 1，不含对角）
func IsAdjacent(a, b, n int) bool {
	if n <= 0 || a < 0 || b < 0 || a >= n*n || b >= n*n {
		return false
	}
	rowA, colA := a/n, a%n
	rowB, colB := b/n, b%n
	return abs(rowA-rowB)+abs(colA-colB) == 1
}

// CanMove 位于 tile 的图块能否滑入位于 blank 的空格
func CanMove(tile, blank, n int) bool {
	return IsAdjacent(tile, blank, n)
}

// ApplyMove 把 pos 位置的图块滑入空格
//
// 返回：
//   - Board: 移动后的新棋盘；不合法时原样返回输入
//   - bool: 是否移动成功（不相邻、越界或点到空格时为 false）
func ApplyMove(b Board, pos int) (Board, bool) {
	n := b.Size()
	blank := b.Blank()
	if blank < 0 || pos == blank || !CanMove(pos, blank, n) {
		return b, false
	}
	next := b.Clone()
	next[blank], next[pos] = next[pos], next[blank]
	return next, true
}

// Neighbors 返回与 pos 相邻的位置（上、下、左、右顺序）
func Neighbors(pos, n int) []int {
	row, col := pos/n, pos%n
	result := make([]int, 0, 4)
	if row > 0 {
		result = append(result, pos-n)
	}
	if row < n-1 {
		result = append(result, pos+n)
	}
	if col > 0 {
		result = append(result, pos-1)
	}
	if col < n-1 {
		result = append(result, pos+1)
	}
	return result
}

// shuffle Fisher-Yates 洗牌
func shuffle(b Board, rng *rand.Rand) {
	for i := len(b) - 1; i > 0; i-- {
		j := intN(rng, i+1)
		b[i], b[j] = b[j], b[i]
	}
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
