/**
 * 探测:输出解析器
 * @author: sun977
 * @date: 2025.11.21
 * @description: 将ping命令的原始文本输出解析为结构化记录
 * @func:
 *   - Parse: 解析ping输出为Result
 */
package probe

import (
	"regexp"
	"strconv"

	"neowatch/internal/model"
)

// Packet 单个回显包的解析结果
type Packet struct {
	Seq  int     `json:"seq"`  // 序列号
	TTL  int     `json:"ttl"`  // 存活跳数
	Time float64 `json:"time"` // 往返时延(毫秒)
}

// Statistics 探测统计汇总的解析结果
type Statistics struct {
	Transmitted int     `json:"transmitted"` // 发送包数
	Received    int     `json:"received"`    // 接收包数
	Lost        int     `json:"lost"`        // 丢失包数(恒为transmitted-received)
	Min         float64 `json:"min"`         // 最小往返时延(毫秒)
	Avg         float64 `json:"avg"`         // 平均往返时延(毫秒)
	Max         float64 `json:"max"`         // 最大往返时延(毫秒)
	Stddev      float64 `json:"stddev"`      // 往返时延标准差(毫秒)
}

// Result 一次探测输出的结构化结果
type Result struct {
	IP         string     `json:"ip"`         // 解析出的目标数值地址
	Packets    []Packet   `json:"packets"`    // 逐包明细，保持出现顺序
	Statistics Statistics `json:"statistics"` // 统计汇总
}

var (
	// 第一个括号内的点分十进制地址
	ipPattern = regexp.MustCompile(`\(([\d.]+)\)`)
	// 逐包行: icmp_seq=<int> ttl=<int> time=<float>
	packetPattern = regexp.MustCompile(`icmp_seq=(\d+) ttl=(\d+) time=([\d.]+)`)
	// 汇总行: "<N> packets transmitted, <M> received"(Linux)或"<M> packets received"(BSD/macOS)
	summaryPattern = regexp.MustCompile(`(\d+) packets transmitted, (\d+) (?:packets received|received)`)
	// 时延行: 标签在不同平台为stddev或mdev
	rttPattern = regexp.MustCompile(`min/avg/max/(?:stddev|mdev) = ([\d.]+)/([\d.]+)/([\d.]+)/([\d.]+)`)
)

// Parse 解析ping命令输出
// 不匹配逐包模式的行被静默跳过；逐包行和汇总行都缺失时返回解析失败，
// 区别于成功解析出零个包的情况(100%丢包时汇总行仍然存在)
func Parse(output string) (*Result, error) {
	result := &Result{Packets: []Packet{}}

	// 解析目标数值地址
	if m := ipPattern.FindStringSubmatch(output); m != nil {
		result.IP = m[1]
	}

	// 解析逐包明细，保持出现顺序
	for _, m := range packetPattern.FindAllStringSubmatch(output, -1) {
		seq, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		ttl, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		rtt, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}
		result.Packets = append(result.Packets, Packet{Seq: seq, TTL: ttl, Time: rtt})
	}

	// 解析汇总行
	summary := summaryPattern.FindStringSubmatch(output)
	if summary == nil && len(result.Packets) == 0 {
		return nil, model.ErrProbeParseFailed
	}

	if summary != nil {
		result.Statistics.Transmitted, _ = strconv.Atoi(summary[1])
		result.Statistics.Received, _ = strconv.Atoi(summary[2])
	} else {
		// 汇总行缺失时从逐包明细推算
		result.Statistics.Transmitted = len(result.Packets)
		result.Statistics.Received = len(result.Packets)
	}

	// 丢包数始终重新计算，不信任工具输出中的丢包字段
	result.Statistics.Lost = result.Statistics.Transmitted - result.Statistics.Received

	// 时延汇总行在100%丢包时不存在，缺失时保持零值
	if m := rttPattern.FindStringSubmatch(output); m != nil {
		result.Statistics.Min, _ = strconv.ParseFloat(m[1], 64)
		result.Statistics.Avg, _ = strconv.ParseFloat(m[2], 64)
		result.Statistics.Max, _ = strconv.ParseFloat(m[3], 64)
		result.Statistics.Stddev, _ = strconv.ParseFloat(m[4], 64)
	}

	return result, nil
}
