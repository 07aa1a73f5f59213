// Package utils 提供通用工具函数：缓动曲线、棋盘几何与指针输入
package utils

import "math"

// Easing Functions (缓动函数)
//
// 音量淡入淡出使用的曲线。所有函数接受进度 t ∈ [0, 1]，返回 ∈ [0, 1]，
// 且满足 f(0)=0、f(1)=1，保证淡入淡出最终精确落在目标音量上。

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（匀速）
// 淡入淡出默认使用，t=0.5 时正好是一半音量
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInOutCubic 三次方缓入缓出
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseEqualPower 等功率曲线 sin(t·π/2)
// 交叉淡化时两条音轨的感知响度之和更平稳
func EaseEqualPower(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return math.Sin(t * math.Pi / 2)
}

var easingByName = map[string]EasingFunc{
	"linear":     EaseLinear,
	"inQuad":     EaseInQuad,
	"outQuad":    EaseOutQuad,
	"inOutCubic": EaseInOutCubic,
	"equalPower": EaseEqualPower,
}

// EasingByName 按配置中的名称查找缓动函数
// 名称未知时返回 EaseLinear 和 false
func EasingByName(name string) (EasingFunc, bool) {
	if fn, ok := easingByName[name]; ok {
		return fn, true
	}
	return EaseLinear, false
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把值限制在 [0, 1]，NaN 视为 0
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
