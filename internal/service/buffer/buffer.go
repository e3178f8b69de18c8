// Package buffer 实现扫码落地页到签约向导之间的过渡跳转
package buffer

import (
	"net/url"
	"sync"
	"time"
)

// Delay 过渡页停留时长
const Delay = 4 * time.Second

// WizardPath 是过渡结束后跳转的向导路由
const WizardPath = "/index"

// Target 根据落地页的查询参数计算跳转地址。
// id 优先于 data；两者都没有时返回 false，页面停留在原地。
func Target(query url.Values) (string, bool) {
	if id := query.Get("id"); id != "" {
		return WizardPath + "?" + url.Values{"id": {id}}.Encode(), true
	}
	if data := query.Get("data"); data != "" {
		return WizardPath + "?" + url.Values{"data": {data}}.Encode(), true
	}
	return "", false
}

// Transition 是一次性的延迟跳转。Stop 之后 navigate 不会再被调用。
type Transition struct {
	mu       sync.Mutex
	timer    *time.Timer
	stopped  bool
	target   string
	navigate func(target string)
}

// Start 在 delay 之后以目标地址调用 navigate。
// 查询参数中没有记录引用时不启动计时器，返回 nil。
func Start(query url.Values, delay time.Duration, navigate func(target string)) *Transition {
	target, ok := Target(query)
	if !ok {
		return nil
	}
	t := &Transition{target: target, navigate: navigate}
	t.mu.Lock()
	t.timer = time.AfterFunc(delay, t.fire)
	t.mu.Unlock()
	return t
}

func (t *Transition) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.mu.Unlock()
	t.navigate(t.target)
}

// Target 返回将要跳转的地址
func (t *Transition) Target() string {
	return t.target
}

// Stop 取消尚未触发的跳转，返回是否成功取消。可重复调用。
func (t *Transition) Stop() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}
