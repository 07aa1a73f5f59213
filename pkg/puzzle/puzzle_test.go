package puzzle

import (
	"math/rand/v2"
	"testing"
)

// TestSolve 求解结果按顺序执行后必然还原
func TestSolve(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	for i := 0; i < 5; i++ {
		b := Generate(3, rng)
		moves, ok := Solve(b, 0)
		if !ok {
			t.Fatalf("Solve(%v) found no solution", b)
		}
		current := b
		for _, pos := range moves {
			var moved bool
			current, moved = ApplyMove(current, pos)
			if !moved {
				t.Fatalf("solution step %d is not a legal move on %v", pos, current)
			}
		}
		if !IsSolved(current) {
			t.Fatalf("board %v not solved after %d moves", current, len(moves))
		}
	}
}

// TestSolveEdgeCases 已还原与不可解的棋盘
func TestSolveEdgeCases(t *testing.T) {
	moves, ok := Solve(Solved(3), 0)
	if !ok || len(moves) != 0 {
		t.Errorf("Solve(solved) = %v, %v; want empty, true", moves, ok)
	}

	if _, ok := Solve(Board{1, 0, 2, 3, 4, 5, 6, 7, 8}, 0); ok {
		t.Error("Solve should fail on an unsolvable board")
	}

	one := Board{0, 1, 2, 3, 4, 5, 6, 8, 7}
	moves, ok = Solve(one, 0)
	if !ok || len(moves) != 1 || moves[0] != 8 {
		t.Errorf("Solve(one move away) = %v, %v; want [8], true", moves, ok)
	}
}

// TestPuzzleTryMove 会话中的移动、计数与还原回调
func TestPuzzleTryMove(t *testing.T) {
	p := NewWithBoard(KindImage, Board{0, 1, 2, 3, 4, 5, 6, 8, 7})
	if p == nil {
		t.Fatal("NewWithBoard returned nil for a solvable board")
	}

	solvedCalls := 0
	p.OnSolved(func() { solvedCalls++ })

	if p.TryMove(0) {
		t.Error("non-adjacent move should be rejected")
	}
	if p.Moves() != 0 {
		t.Errorf("Moves after rejected move: got %d, want 0", p.Moves())
	}

	if !p.TryMove(8) {
		t.Fatal("adjacent move should succeed")
	}
	if !p.IsSolved() {
		t.Error("puzzle should be solved")
	}
	if p.Moves() != 1 {
		t.Errorf("Moves: got %d, want 1", p.Moves())
	}
	if solvedCalls != 1 {
		t.Errorf("OnSolved calls: got %d, want 1", solvedCalls)
	}

	// 还原后锁定棋盘
	if p.TryMove(7) {
		t.Error("moves after solving should be rejected")
	}
	if solvedCalls != 1 {
		t.Errorf("OnSolved should fire once, got %d", solvedCalls)
	}
	if p.Movable() != nil {
		t.Error("Movable should be empty once solved")
	}
}

// TestPuzzleNew 两种拼图类型共用同一引擎
func TestPuzzleNew(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for _, kind := range []Kind{KindImage, KindThemed} {
		p := New(kind, 3, rng)
		if p.Kind() != kind {
			t.Errorf("Kind: got %s, want %s", p.Kind(), kind)
		}
		if p.Size() != 3 {
			t.Errorf("Size: got %d, want 3", p.Size())
		}
		if p.IsSolved() {
			t.Error("new puzzle should not be solved")
		}
		board := p.Board()
		board[0], board[1] = board[1], board[0]
		if p.Board().Equal(board) {
			t.Error("Board() must return a copy")
		}
		if len(p.Movable()) < 2 {
			t.Errorf("Movable: got %v, want at least 2 positions", p.Movable())
		}
	}
}

// TestPuzzleSolveThroughSession 按求解步骤驱动会话直到还原
func TestPuzzleSolveThroughSession(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 22))
	p := New(KindThemed, 3, rng)
	moves, ok := Solve(p.Board(), 0)
	if !ok {
		t.Fatal("generated puzzle has no solution")
	}
	for _, pos := range moves {
		if !p.TryMove(pos) {
			t.Fatalf("TryMove(%d) rejected", pos)
		}
	}
	if !p.IsSolved() {
		t.Error("puzzle should be solved after replaying the solution")
	}

	p.Reset(rng)
	if p.IsSolved() || p.Moves() != 0 {
		t.Error("Reset should produce a fresh unsolved board")
	}
}

// TestNewWithBoardUnsolvable 不可解棋盘被拒绝
func TestNewWithBoardUnsolvable(t *testing.T) {
	if p := NewWithBoard(KindImage, Board{1, 0, 2, 3, 4, 5, 6, 7, 8}); p != nil {
		t.Error("NewWithBoard should reject an unsolvable board")
	}
}
