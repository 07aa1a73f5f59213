// embed.go - 资源嵌入声明
// 必须放在项目根目录（与 data/ 同级）
// 因为 //go:embed 指令只能嵌入当前包目录及其子目录的文件
package main

import "embed"

// 音频资源体积较大，不嵌入，运行时从 assets/ 目录读取
//
//go:embed data/story.yaml
var dataFS embed.FS
