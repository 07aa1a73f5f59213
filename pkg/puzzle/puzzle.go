package puzzle

import "math/rand/v2"

// Kind 拼图界面类型
type Kind string

const (
	// KindImage 图片滑块拼图
	KindImage Kind = "image"
	// KindThemed 主题图块滑块拼图
	KindThemed Kind = "themed"
)

// Puzzle 一局滑块拼图的会话状态
// 两种拼图界面各自持有一个实例，通过 TryMove 驱动
type Puzzle struct {
	kind     Kind
	size     int
	board    Board
	moves    int
	solved   bool
	onSolved func()
}

// New 创建一局新的拼图，棋盘由 Generate 生成
func New(kind Kind, size int, rng *rand.Rand) *Puzzle {
	board := Generate(size, rng)
	return &Puzzle{
		kind:  kind,
		size:  board.Size(),
		board: board,
	}
}

// NewWithBoard 使用给定棋盘创建拼图（测试与存档回放使用）
// 棋盘不可解时返回 nil
func NewWithBoard(kind Kind, board Board) *Puzzle {
	if !IsSolvable(board) {
		return nil
	}
	return &Puzzle{
		kind:   kind,
		size:   board.Size(),
		board:  board.Clone(),
		solved: IsSolved(board),
	}
}

// OnSolved 设置还原时的回调（只触发一次）
func (p *Puzzle) OnSolved(fn func()) {
	p.onSolved = fn
}

// TryMove 点击 pos 位置的图块
//
// 不相邻、越界或已还原时静默拒绝并返回 false，
// 界面层可以据此给出否定反馈
func (p *Puzzle) TryMove(pos int) bool {
	if p.solved {
		return false
	}
	next, ok := ApplyMove(p.board, pos)
	if !ok {
		return false
	}
	p.board = next
	p.moves++

	if IsSolved(p.board) {
		p.solved = true
		if p.onSolved != nil {
			p.onSolved()
		}
	}
	return true
}

// Reset 重新生成棋盘并清零步数
func (p *Puzzle) Reset(rng *rand.Rand) {
	p.board = Generate(p.size, rng)
	p.moves = 0
	p.solved = false
}

// Kind 返回拼图类型
func (p *Puzzle) Kind() Kind {
	return p.kind
}

// Size 返回边长
func (p *Puzzle) Size() int {
	return p.size
}

// Board 返回当前棋盘的副本
func (p *Puzzle) Board() Board {
	return p.board.Clone()
}

// Moves 返回已执行的合法移动步数
func (p *Puzzle) Moves() int {
	return p.moves
}

// IsSolved 是否已还原
func (p *Puzzle) IsSolved() bool {
	return p.solved
}

// Movable 返回当前可以移动的图块位置
func (p *Puzzle) Movable() []int {
	if p.solved {
		return nil
	}
	return Neighbors(p.board.Blank(), p.size)
}
