/**
 * 配置:配置文件监听器
 * @author: sun977
 * @date: 2025.11.20
 * @description: 基于fsnotify监听配置文件变更，支持日志级别等运行期可调项的热更新
 * @func: ConfigWatcher结构体及Start/Stop方法
 */
package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc 配置重载回调函数
// 只把重新加载成功后的新配置交给回调，解析失败的变更被忽略
type ReloadFunc func(newConfig *Config)

// ConfigWatcher 配置文件监听器
type ConfigWatcher struct {
	configFile string
	env        string
	watcher    *fsnotify.Watcher
	callbacks  []ReloadFunc
	mu         sync.Mutex
	done       chan struct{}
}

// NewConfigWatcher 创建配置文件监听器
func NewConfigWatcher(configPath, env string) (*ConfigWatcher, error) {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &ConfigWatcher{
		configFile: getConfigFileName(configPath, env),
		env:        env,
		watcher:    watcher,
		done:       make(chan struct{}),
	}, nil
}

// OnReload 注册配置重载回调
func (w *ConfigWatcher) OnReload(fn ReloadFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// Start 启动监听
// 监听配置文件所在目录而非文件本身，兼容编辑器原子写(rename+create)
func (w *ConfigWatcher) Start() error {
	dir := filepath.Dir(w.configFile)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch config dir %s: %w", dir, err)
	}

	go w.watchLoop()
	return nil
}

// Stop 停止监听
func (w *ConfigWatcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

// watchLoop 监听循环
func (w *ConfigWatcher) watchLoop() {
	// 去抖:编辑器保存会触发多次事件，合并500ms内的变更
	var debounce *time.Timer

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.configFile) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(500*time.Millisecond, w.reload)
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// reload 重新加载配置并通知回调
func (w *ConfigWatcher) reload() {
	newConfig, err := LoadConfig(filepath.Dir(w.configFile), w.env)
	if err != nil {
		// 配置文件损坏时保留旧配置
		return
	}

	w.mu.Lock()
	callbacks := make([]ReloadFunc, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, fn := range callbacks {
		fn(newConfig)
	}
}
