// verify_progression 无界面地走完整个故事，打印每一步的进度与最终密码
//
// 用法:
//
//	go run ./cmd/verify_progression [-story data/story.yaml] [-verbose]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/giftrooms/pkg/config"
	"github.com/decker502/giftrooms/pkg/game"
	"github.com/decker502/giftrooms/pkg/puzzle"
	"github.com/decker502/giftrooms/pkg/types"
)

var (
	storyFile = flag.String("story", "", "剧情配置文件（默认使用内置剧情）")
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	story := config.DefaultStoryConfig()
	if *storyFile != "" {
		loaded, err := config.LoadStoryConfig(*storyFile)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		story = loaded
	}

	store := game.NewProgressionStore(story)
	seq := game.NewSequencer(nil, game.SequencerConfigFromAudio(story.Audio))
	seq.PreloadAll(story.Audio.Tracks)
	nav := game.NewNavigator(story, store, seq, nil)
	nav.Start()

	store.Subscribe(func(prev, next game.State) {
		fmt.Printf("  v%-3d scene=%-10s music=%s\n", next.Version(), next.Scene(), nav.CurrentMusic())
	})

	fmt.Println("=== Walkthrough ===")
	if !walk(store, nav, story) {
		os.Exit(1)
	}

	state := store.State()
	fmt.Println()
	fmt.Println("=== Result ===")
	fmt.Printf("combination: %s\n", state.Combination())
	fmt.Printf("gift opened: %v\n", state.Gift().Opened)
	if !state.Gift().Opened {
		fmt.Println("❌ gift was not opened")
		os.Exit(1)
	}
	fmt.Println("✅ story completed")
}

// walk 反复进入可进入的房间并完成它，直到终章开放
func walk(store *game.ProgressionStore, nav *game.Navigator, story *config.StoryConfig) bool {
	enter(nav, types.SceneHub)

	for range len(story.Rooms) + 1 {
		if nav.CanEnter(types.SceneFinal) {
			break
		}
		room, ok := nextRoom(store, nav)
		if !ok {
			fmt.Println("❌ no enterable unfinished room, story is stuck")
			return false
		}
		enter(nav, room.Scene())
		finish(nav, room)
		enter(nav, types.SceneHub)
	}

	if !enter(nav, types.SceneFinal) {
		fmt.Printf("❌ final scene still locked, milestones: %v\n", missingMilestones(store.State()))
		return false
	}
	if !nav.RevealPhoto() {
		fmt.Println("❌ photo fragments missing")
		return false
	}
	if nav.TryCombination("") {
		fmt.Println("❌ empty code accepted")
		return false
	}
	if !nav.TryCombination(store.Combination().Code()) {
		fmt.Println("❌ combination rejected")
		return false
	}
	if !enter(nav, types.SceneDoor) {
		return false
	}
	return nav.OpenGift()
}

func enter(nav *game.Navigator, scene types.Scene) bool {
	if !nav.Enter(scene) {
		fmt.Printf("⚠️  cannot enter %s\n", scene)
		return false
	}
	return true
}

// nextRoom 当前场景出口中第一个未完成的房间
func nextRoom(store *game.ProgressionStore, nav *game.Navigator) (types.RoomID, bool) {
	state := store.State()
	for _, exit := range nav.Exits() {
		room := types.RoomID(exit)
		if state.HasRoom(room) && !state.IsRoomCompleted(room) {
			return room, true
		}
	}
	return "", false
}

// finish 有拼图的房间按最短步骤还原，其它房间直接完成
func finish(nav *game.Navigator, room types.RoomID) {
	p := nav.Puzzle(room)
	if p == nil {
		reward, _ := nav.FinishRoom(room)
		printReward(reward)
		return
	}

	steps, ok := puzzle.Solve(p.Board(), 0)
	if !ok {
		fmt.Printf("⚠️  %s puzzle too large to solve, finishing directly\n", room)
		reward, _ := nav.FinishRoom(room)
		printReward(reward)
		return
	}
	for _, pos := range steps {
		nav.MoveTile(room, pos)
	}
	fmt.Printf("  %s puzzle solved in %d moves\n", room, p.Moves())
	reward, _ := nav.RewardFor(room)
	printReward(reward)
}

func printReward(reward game.Reward) {
	if reward.HasFragment {
		fmt.Printf("  🎁 %s: fragment #%d = %d\n", reward.Room, reward.Fragment.ID, reward.Fragment.Number)
		return
	}
	fmt.Printf("  🎁 %s complete\n", reward.Room)
}

func missingMilestones(state game.State) []types.Milestone {
	var missing []types.Milestone
	for _, m := range state.WinMilestones() {
		if !state.IsMilestoneReached(m) {
			missing = append(missing, m)
		}
	}
	return missing
}
