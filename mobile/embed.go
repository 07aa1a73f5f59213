//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译，构建前需要把 data/story.yaml
// 复制到 mobile/data/（见 mobile.go 的说明）。
package mobile

import "embed"

//go:embed data/story.yaml
var dataFS embed.FS
