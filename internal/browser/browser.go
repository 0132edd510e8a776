package browser

import (
	"fmt"
	"math"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// extractScript returns the outerHTML of every element matching a CSS
// selector, joined with newlines. The selector is passed as a function
// argument, so no string splicing happens on the page.
const extractScript = `(sel) => {
	const els = document.querySelectorAll(sel);
	return Array.from(els).map(el => el.outerHTML).join('\n');
}`

// Options configures the browser session
type Options struct {
	ChromePath   string        // Explicit Chrome binary; auto-detected if empty
	Headless     bool          // Run without a visible window
	DisableCache bool          // Always fetch the latest content
	Timeout      time.Duration // Per-operation page timeout
}

// Session wraps a launched Chrome instance and its page
type Session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	timeout  time.Duration
}

// Launch starts Chrome and opens an empty tab.
func Launch(opts Options) (*Session, error) {
	l := launcher.New().Headless(opts.Headless)
	if opts.ChromePath != "" {
		l = l.Bin(opts.ChromePath)
	} else if bin, ok := launcher.LookPath(); ok {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome (make sure Chrome is installed on your system): %w", err)
	}

	b := rod.New().ControlURL(controlURL).Timeout(sessionBudget(opts.Timeout))
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("failed to open new tab: %w", err)
	}

	if opts.DisableCache {
		if err := (proto.NetworkSetCacheDisabled{CacheDisabled: true}).Call(page); err != nil {
			_ = b.Close()
			l.Cleanup()
			return nil, fmt.Errorf("failed to disable browser cache: %w", err)
		}
	}

	return &Session{launcher: l, browser: b, page: page, timeout: opts.Timeout}, nil
}

// Navigate loads the URL and waits for the page load event.
func (s *Session) Navigate(url string) error {
	page := s.page.Timeout(s.timeout)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to URL %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("page load timed out: %w", err)
	}
	return nil
}

// ExtractHTML returns the joined outerHTML of all elements matching the
// selector. An empty string means nothing matched.
func (s *Session) ExtractHTML(selector string) (string, error) {
	obj, err := s.page.Timeout(s.timeout).Eval(extractScript, selector)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate selector %q: %w", selector, err)
	}
	return obj.Value.Str(), nil
}

// Close shuts down the browser and cleans up the launcher.
func (s *Session) Close() {
	_ = s.browser.Close()
	s.launcher.Cleanup()
}

// sessionBudget is the overall browser deadline: the page timeout plus a
// buffer for launch and extraction, saturating instead of overflowing.
func sessionBudget(timeout time.Duration) time.Duration {
	const buffer = 30 * time.Second
	if timeout > math.MaxInt64-buffer {
		return math.MaxInt64
	}
	return timeout + buffer
}
