package puzzle

import (
	"math/rand/v2"
	"testing"
)

// reachableFromSolved 从还原状态出发广度优先枚举全部可达棋盘
func reachableFromSolved(n int) map[string]bool {
	start := Solved(n)
	seen := map[string]bool{key(start): true}
	queue := []Board{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		blank := current.Blank()
		for _, pos := range Neighbors(blank, n) {
			next := current.Clone()
			next[blank], next[pos] = next[pos], next[blank]
			k := key(next)
			if !seen[k] {
				seen[k] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// TestGenerateInvariants 1000 次生成的 3×3 棋盘都是偶逆序且未还原
func TestGenerateInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	reachable := reachableFromSolved(3)

	for i := 0; i < 1000; i++ {
		b := Generate(3, rng)
		if len(b) != 9 {
			t.Fatalf("iteration %d: board length %d, want 9", i, len(b))
		}
		if Inversions(b)%2 != 0 {
			t.Fatalf("iteration %d: odd inversion count %d for %v", i, Inversions(b), b)
		}
		if IsSolved(b) {
			t.Fatalf("iteration %d: generated board is already solved", i)
		}
		if !reachable[key(b)] {
			t.Fatalf("iteration %d: board %v is not reachable from the solved state", i, b)
		}
	}
}

// TestReachableCountMatchesParity 可达状态数恰好是全部排列的一半
func TestReachableCountMatchesParity(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{name: "2x2", n: 2, want: 12},
		{name: "3x3", n: 3, want: 181440},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reachable := reachableFromSolved(tt.n)
			if len(reachable) != tt.want {
				t.Fatalf("reachable states: got %d, want %d", len(reachable), tt.want)
			}
			for k := range reachable {
				b := make(Board, len(k))
				for i := range k {
					b[i] = int(k[i])
				}
				if !IsSolvable(b) {
					t.Fatalf("reachable board %v reported as unsolvable", b)
				}
			}
		})
	}
}

// TestIsSolvableEvenSize 偶数边长时空格所在行参与奇偶判断
func TestIsSolvableEvenSize(t *testing.T) {
	// 2x2：交换两个图块后不可解
	if IsSolvable(Board{1, 0, 2, 3}) {
		t.Error("Board{1,0,2,3} should be unsolvable")
	}
	// 空格上移一格：可解，逆序数为 1（奇数）
	b := Board{0, 3, 2, 1}
	if Inversions(b)%2 != 1 {
		t.Fatalf("expected odd inversions for %v, got %d", b, Inversions(b))
	}
	if !IsSolvable(b) {
		t.Errorf("%v should be solvable", b)
	}
}

// TestGenerateSmallAndLarge 2×2 与大棋盘（合法移动打乱）
func TestGenerateSmallAndLarge(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	reachable := reachableFromSolved(2)

	for i := 0; i < 100; i++ {
		b := Generate(2, rng)
		if IsSolved(b) || !reachable[key(b)] {
			t.Fatalf("2x2 board %v invalid", b)
		}
	}

	for _, n := range []int{4, 5, 6} {
		b := Generate(n, rng)
		if len(b) != n*n {
			t.Fatalf("n=%d: board length %d", n, len(b))
		}
		if !IsSolvable(b) {
			t.Errorf("n=%d: generated board %v is unsolvable", n, b)
		}
		if IsSolved(b) {
			t.Errorf("n=%d: generated board is solved", n)
		}
	}
}

// TestGenerateClampsSize 边长过小按 MinSize 处理
func TestGenerateClampsSize(t *testing.T) {
	b := Generate(1, rand.New(rand.NewPCG(3, 4)))
	if len(b) != MinSize*MinSize {
		t.Fatalf("board length: got %d, want %d", len(b), MinSize*MinSize)
	}
	if IsSolved(b) {
		t.Error("clamped board should not be solved")
	}
}

// TestGenerateDeterministic 固定随机源时结果可复现
func TestGenerateDeterministic(t *testing.T) {
	a := Generate(3, rand.New(rand.NewPCG(42, 0)))
	b := Generate(3, rand.New(rand.NewPCG(42, 0)))
	if !a.Equal(b) {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}

// TestGenerateByMoves 合法移动打乱的棋盘总是可达
func TestGenerateByMoves(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	reachable := reachableFromSolved(3)
	for _, moves := range []int{0, 1, 2, 50} {
		b := GenerateByMoves(3, moves, rng)
		if IsSolved(b) {
			t.Errorf("moves=%d: board is solved", moves)
		}
		if !reachable[key(b)] {
			t.Errorf("moves=%d: board %v not reachable", moves, b)
		}
	}
}

// TestIsAdjacent 相邻判断（不含对角、不跨行）
func TestIsAdjacent(t *testing.T) {
	tests := []struct {
		name string
		a, b int
		want bool
	}{
		{name: "左右相邻", a: 0, b: 1, want: true},
		{name: "上下相邻", a: 1, b: 4, want: true},
		{name: "对角", a: 0, b: 4, want: false},
		{name: "跨行不相邻（2 与 3）", a: 2, b: 3, want: false},
		{name: "同一位置", a: 4, b: 4, want: false},
		{name: "距离为 2", a: 0, b: 2, want: false},
		{name: "越界", a: 8, b: 9, want: false},
		{name: "负数", a: -1, b: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAdjacent(tt.a, tt.b, 3); got != tt.want {
				t.Errorf("IsAdjacent(%d, %d, 3) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestIsAdjacentSymmetric 对所有位置对 IsAdjacent(a,b) == IsAdjacent(b,a)
func TestIsAdjacentSymmetric(t *testing.T) {
	for n := 2; n <= 5; n++ {
		for a := 0; a < n*n; a++ {
			for b := 0; b < n*n; b++ {
				if IsAdjacent(a, b, n) != IsAdjacent(b, a, n) {
					t.Fatalf("n=%d: IsAdjacent(%d,%d) != IsAdjacent(%d,%d)", n, a, b, b, a)
				}
			}
		}
	}
}

// TestApplyMove 合法移动交换图块与空格，非法移动不改变棋盘
func TestApplyMove(t *testing.T) {
	b := Board{0, 1, 2, 3, 4, 5, 6, 8, 7}

	next, ok := ApplyMove(b, 8)
	if !ok {
		t.Fatal("moving tile at 8 into blank at 7 should succeed")
	}
	if !IsSolved(next) {
		t.Errorf("expected solved board, got %v", next)
	}
	if b[7] != 8 {
		t.Error("ApplyMove must not mutate its input")
	}

	rejected, ok := ApplyMove(b, 0)
	if ok {
		t.Error("moving non-adjacent tile should be rejected")
	}
	if !rejected.Equal(b) {
		t.Errorf("rejected move changed the board: %v", rejected)
	}

	if _, ok := ApplyMove(b, 7); ok {
		t.Error("clicking the blank should be rejected")
	}
}

// TestInversions 逆序数忽略空格
func TestInversions(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  int
	}{
		{name: "还原状态", board: Solved(3), want: 0},
		{name: "空格在开头", board: Board{8, 0, 1, 2, 3, 4, 5, 6, 7}, want: 0},
		{name: "一对逆序", board: Board{1, 0, 2, 3, 4, 5, 6, 7, 8}, want: 1},
		{name: "完全倒序", board: Board{7, 6, 5, 4, 3, 2, 1, 0, 8}, want: 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inversions(tt.board); got != tt.want {
				t.Errorf("Inversions(%v) = %d, want %d", tt.board, got, tt.want)
			}
		})
	}
}
