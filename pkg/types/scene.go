// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// Scene 当前激活的场景标签（房间或界面）
// 任意时刻只有一个场景处于激活状态
type Scene string

const (
	// SceneIntro 开场
	SceneIntro Scene = "intro"
	// SceneHub 大厅（各房间的入口）
	SceneHub Scene = "hub"
	// SceneLivingRoom 客厅（圣诞树和壁炉）
	SceneLivingRoom Scene = "livingroom"
	// SceneKitchen 厨房
	SceneKitchen Scene = "kitchen"
	// SceneBedroom 卧室
	SceneBedroom Scene = "bedroom"
	// SceneAirbag 安全气囊房间
	SceneAirbag Scene = "airbag"
	// SceneGarden 花园（喂狗）
	SceneGarden Scene = "garden"
	// SceneFinal 终章（拼出照片、输入密码）
	SceneFinal Scene = "final"
	// SceneDoor 礼物门
	SceneDoor Scene = "door"
)

// RoomID 参与解锁/完成进度的房间标识
// 房间是场景的真子集：intro、final 等场景不是房间
type RoomID string

const (
	RoomLivingRoom RoomID = "livingroom"
	RoomKitchen    RoomID = "kitchen"
	RoomBedroom    RoomID = "bedroom"
	RoomAirbag     RoomID = "airbag"
	RoomGarden     RoomID = "garden"
)

// Scene 返回房间对应的场景
func (r RoomID) Scene() Scene {
	return Scene(r)
}

// String 返回场景的字符串表示
func (s Scene) String() string {
	return string(s)
}

// String 返回房间的字符串表示
func (r RoomID) String() string {
	return string(r)
}

// Milestone 终局条件中的一个标记
// 与房间的完成表是两个独立的命名空间，AllRoomsComplete 只看这里
type Milestone string

const (
	// MilestoneDogFed 已喂狗
	MilestoneDogFed Milestone = "dogFed"
	// MilestoneTarotPuzzle 塔罗拼图已完成
	MilestoneTarotPuzzle Milestone = "tarotPuzzle"
	// MilestoneBoardGame 桌游已通关
	MilestoneBoardGame Milestone = "boardGame"
	// MilestoneLetter 已读信
	MilestoneLetter Milestone = "letter"
)

// WinMilestones 终局条件所需的固定标记集合
var WinMilestones = []Milestone{
	MilestoneDogFed,
	MilestoneTarotPuzzle,
	MilestoneBoardGame,
	MilestoneLetter,
}
