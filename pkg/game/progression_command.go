package game

import "github.com/decker502/giftrooms/pkg/types"

// CommandType 进度命令类型
type CommandType string

const (
	CmdSetScene         CommandType = "scene.set"
	CmdUnlockRoom       CommandType = "room.unlock"
	CmdCompleteRoom     CommandType = "room.complete"
	CmdCollectFragment  CommandType = "fragment.collect"
	CmdRevealPhoto      CommandType = "photo.reveal"
	CmdToggleTreeLights CommandType = "tree_lights.toggle"
	CmdToggleFireplace  CommandType = "fireplace.toggle"
	CmdUnlockGift       CommandType = "gift.unlock"
	CmdOpenGift         CommandType = "gift.open"
	CmdMarkMilestone    CommandType = "milestone.mark"
)

// Command 进入 Reduce 的一条命令
// 只有与 Type 对应的字段有意义
type Command struct {
	Type       CommandType
	Scene      types.Scene
	Room       types.RoomID
	FragmentID int
	Milestone  types.Milestone
}

// SetSceneCmd 切换当前场景（不做合法性检查）
func SetSceneCmd(scene types.Scene) Command {
	return Command{Type: CmdSetScene, Scene: scene}
}

// UnlockRoomCmd 解锁房间
func UnlockRoomCmd(room types.RoomID) Command {
	return Command{Type: CmdUnlockRoom, Room: room}
}

// CompleteRoomCmd 标记房间完成
func CompleteRoomCmd(room types.RoomID) Command {
	return Command{Type: CmdCompleteRoom, Room: room}
}

// CollectFragmentCmd 收集碎片
func CollectFragmentCmd(id int) Command {
	return Command{Type: CmdCollectFragment, FragmentID: id}
}

// RevealPhotoCmd 揭示照片
func RevealPhotoCmd() Command {
	return Command{Type: CmdRevealPhoto}
}

// ToggleTreeLightsCmd 切换圣诞树灯
func ToggleTreeLightsCmd() Command {
	return Command{Type: CmdToggleTreeLights}
}

// ToggleFireplaceCmd 切换壁炉
func ToggleFireplaceCmd() Command {
	return Command{Type: CmdToggleFireplace}
}

// UnlockGiftCmd 解锁主礼物
func UnlockGiftCmd() Command {
	return Command{Type: CmdUnlockGift}
}

// OpenGiftCmd 打开礼物
func OpenGiftCmd() Command {
	return Command{Type: CmdOpenGift}
}

// MarkMilestoneCmd 达成终局标记
func MarkMilestoneCmd(m types.Milestone) Command {
	return Command{Type: CmdMarkMilestone, Milestone: m}
}
