package notify

import "sync"

// MemoryPresenter is an in-memory Presenter recording the alert stack.
// Suitable for development and testing.
type MemoryPresenter struct {
	mu     sync.Mutex
	alerts []Alert
}

// NewMemoryPresenter creates an empty in-memory alert surface.
func NewMemoryPresenter() *MemoryPresenter {
	return &MemoryPresenter{}
}

func (p *MemoryPresenter) Append(a Alert) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, a)
}

func (p *MemoryPresenter) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, a := range p.alerts {
		if a.ID == id {
			p.alerts = append(p.alerts[:i], p.alerts[i+1:]...)
			return
		}
	}
}

func (p *MemoryPresenter) RemoveLast() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.alerts) > 0 {
		p.alerts = p.alerts[:len(p.alerts)-1]
	}
}

// Alerts returns a snapshot of the currently displayed alerts, oldest first.
func (p *MemoryPresenter) Alerts() []Alert {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Alert, len(p.alerts))
	copy(out, p.alerts)
	return out
}

// Last returns the most recently appended alert still displayed, or nil.
func (p *MemoryPresenter) Last() *Alert {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.alerts) == 0 {
		return nil
	}
	a := p.alerts[len(p.alerts)-1]
	return &a
}
