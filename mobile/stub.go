//go:build !mobile

// stub.go - 桌面端构建时的占位文件，让 go build ./... 不需要 mobile 标签
package mobile

// Dummy 是一个空导出函数
func Dummy() {}
