/**
 * 探测:探测执行器
 * @author: sun977
 * @date: 2025.11.21
 * @description: 调用外部ping命令对目标地址执行有界次数的可达性探测
 * @func:
 *   - Runner结构体及Probe方法
 */
package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"neowatch/internal/model"
	"neowatch/internal/pkg/logger"
)

// ProbeResult 探测执行结果，结构化记录加原始输出
type ProbeResult struct {
	*Result
	Raw string `json:"-"` // ping命令原始输出
}

// Runner 探测执行器
// 外部进程派生是系统中开销最大的环节，用信号量约束全局并发量
type Runner struct {
	timeout  time.Duration
	maxCount int
	sem      chan struct{}
}

// NewRunner 创建探测执行器
func NewRunner(maxConcurrent, maxCount int, timeout time.Duration) *Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	return &Runner{
		timeout:  timeout,
		maxCount: maxCount,
		sem:      make(chan struct{}, maxConcurrent),
	}
}

// MaxCount 返回单次探测允许的最大包数
func (r *Runner) MaxCount() int {
	return r.maxCount
}

// Probe 对目标地址执行count次回显探测
// 部分丢包不是错误，正常返回lost>0的结果；
// 地址无法解析返回ErrUnknownHost，工具调用失败返回ErrProbeExecutionFailed。
// 探测一旦启动不随调用方断开而中止，进程自然结束后释放并发额度
func (r *Runner) Probe(ctx context.Context, address string, count int) (*ProbeResult, error) {
	if count <= 0 || count > r.maxCount {
		return nil, model.NewValidationError("count", fmt.Sprintf("count must be between 1 and %d", r.maxCount))
	}

	// 占用并发额度，排队期间尊重调用方取消
	select {
	case r.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-r.sem }()

	args := []string{"-c", strconv.Itoa(count)}
	if secs := int(r.timeout.Seconds()); secs > 0 {
		args = append(args, "-W", strconv.Itoa(secs))
	}
	args = append(args, address)

	started := time.Now()
	output, err := exec.Command("ping", args...).CombinedOutput()
	raw := string(output)

	if err != nil {
		// 解析失败原因:域名无法解析与工具调用失败需要区分
		if isUnknownHostOutput(raw) {
			return nil, model.ErrUnknownHost
		}

		// 丢包时ping以非零状态退出但输出仍可解析，不作为错误处理
		if result, parseErr := Parse(raw); parseErr == nil {
			return &ProbeResult{Result: result, Raw: raw}, nil
		}

		logger.LogError(err, "", 0, "", "probe_exec", map[string]interface{}{
			"address":    address,
			"count":      count,
			"elapsed_ms": time.Since(started).Milliseconds(),
		})
		return nil, model.ErrProbeExecutionFailed
	}

	result, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	return &ProbeResult{Result: result, Raw: raw}, nil
}

// isUnknownHostOutput 判断输出是否表明目标地址无法解析
// 不同平台/libc的报错措辞不同
func isUnknownHostOutput(output string) bool {
	lower := strings.ToLower(output)
	for _, marker := range []string{
		"unknown host",
		"name or service not known",
		"cannot resolve",
		"temporary failure in name resolution",
		"failure in name resolution",
	} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
