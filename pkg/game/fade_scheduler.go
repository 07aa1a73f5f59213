package game

import (
	"maps"
	"slices"
	"time"

	"github.com/decker502/giftrooms/pkg/utils"
)

// fadeTask 一个正在进行的音量渐变
type fadeTask struct {
	generation uint64
	from, to   float64
	start      time.Time
	duration   time.Duration
	onStep     func(gain float64)
	onDone     func()
}

// FadeScheduler 淡入淡出调度器
//
// 每个音轨 ID 最多一个进行中的渐变。对同一 ID 再次 Schedule 会取代旧任务，
// 旧任务不再推进，也不会触发完成回调。不同 ID 的渐变彼此独立。
//
// 调度器本身不启动 goroutine：由游戏循环每帧调用 Tick 推进，
// 每一步按开始以来经过的时间重新计算增益，与帧率无关。
type FadeScheduler struct {
	now        func() time.Time
	easing     utils.EasingFunc
	tasks      map[string]*fadeTask
	generation uint64
}

// NewFadeScheduler 创建调度器
//
// 参数：
//   - now: 时钟函数，nil 时使用 time.Now（测试中注入假时钟）
//   - easing: 缓动曲线，nil 时使用线性曲线
//
// 返回：
//   - *FadeScheduler: 调度器实例
func NewFadeScheduler(now func() time.Time, easing utils.EasingFunc) *FadeScheduler {
	if now == nil {
		now = time.Now
	}
	if easing == nil {
		easing = utils.EaseLinear
	}
	return &FadeScheduler{
		now:    now,
		easing: easing,
		tasks:  make(map[string]*fadeTask),
	}
}

// Schedule 为 id 安排一次从 from 到 to 的渐变
//
// onStep 以当前增益被调用：安排时立即调用一次（增益为 from），之后每次 Tick 调用。
// 到达终点后任务自行结束并调用 onDone（可为 nil）。
// duration <= 0 时立即以 to 调用 onStep 和 onDone。
//
// 参数：
//   - id: 音轨 ID
//   - from, to: 起止增益
//   - duration: 渐变时长
//   - onStep: 增益更新回调
//   - onDone: 完成回调，仅在该任务仍是 id 的当前任务时调用
//
// 返回：
//   - uint64: 本次任务的代号
func (fs *FadeScheduler) Schedule(id string, from, to float64, duration time.Duration, onStep func(float64), onDone func()) uint64 {
	fs.generation++
	gen := fs.generation
	delete(fs.tasks, id)

	if duration <= 0 {
		if onStep != nil {
			onStep(to)
		}
		if onDone != nil {
			onDone()
		}
		return gen
	}

	task := &fadeTask{
		generation: gen,
		from:       from,
		to:         to,
		start:      fs.now(),
		duration:   duration,
		onStep:     onStep,
		onDone:     onDone,
	}
	fs.tasks[id] = task
	if onStep != nil {
		onStep(from)
	}
	return gen
}

// Cancel 取消 id 上进行中的渐变，不调用完成回调
//
// 返回：
//   - bool: 是否确实取消了一个任务
func (fs *FadeScheduler) Cancel(id string) bool {
	if _, ok := fs.tasks[id]; !ok {
		return false
	}
	delete(fs.tasks, id)
	return true
}

// Active 返回 id 上是否有进行中的渐变
func (fs *FadeScheduler) Active(id string) bool {
	_, ok := fs.tasks[id]
	return ok
}

// Generation 返回 id 当前任务的代号
func (fs *FadeScheduler) Generation(id string) (uint64, bool) {
	task, ok := fs.tasks[id]
	if !ok {
		return 0, false
	}
	return task.generation, true
}

// Len 返回进行中的任务数
func (fs *FadeScheduler) Len() int {
	return len(fs.tasks)
}

// Tick 推进所有进行中的渐变
//
// 按 ID 排序遍历快照，回调中新增的 ID 不会在本轮被推进。
func (fs *FadeScheduler) Tick() {
	if len(fs.tasks) == 0 {
		return
	}
	now := fs.now()

	for _, id := range slices.Sorted(maps.Keys(fs.tasks)) {
		task, ok := fs.tasks[id]
		if !ok {
			continue
		}

		progress := float64(now.Sub(task.start)) / float64(task.duration)
		progress = utils.Clamp01(progress)

		gain := task.to
		if progress < 1 {
			gain = utils.Lerp(task.from, task.to, fs.easing(progress))
		}
		if task.onStep != nil {
			task.onStep(gain)
		}
		if progress < 1 {
			continue
		}

		// onStep 可能已经取代了本任务
		if current, ok := fs.tasks[id]; !ok || current.generation != task.generation {
			continue
		}
		delete(fs.tasks, id)
		if task.onDone != nil {
			task.onDone()
		}
	}
}
