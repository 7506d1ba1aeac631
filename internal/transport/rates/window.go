// Package rates limits how often something may happen inside a fixed window.
package rates

// Window counts events since Start. The zero value is ready to use.
type Window struct {
	Start int64
	Count int
}

// Allow records one event at now and reports whether it fits within max
// events per span. When it does not, retryIn is how long until the window
// resets. A non-positive span or max disables the limit.
func (w *Window) Allow(now, span int64, max int) (ok bool, retryIn int64) {
	if span <= 0 || max <= 0 {
		return true, 0
	}
	if w.Count == 0 || now-w.Start >= span {
		w.Start = now
		w.Count = 0
	}
	w.Count++
	if w.Count <= max {
		return true, 0
	}
	return false, w.Start + span - now
}
