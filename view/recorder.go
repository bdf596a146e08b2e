package view

import "sync"

// Recorder is a View that keeps everything written to it
type Recorder struct {
	mu       sync.Mutex
	texts    map[string]string
	lists    map[string][]Item
	alerts   []string
	location string
}

func NewRecorder() *Recorder {
	return &Recorder{
		texts: make(map[string]string),
		lists: make(map[string][]Item),
	}
}

func (r *Recorder) SetText(element, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts[element] = text
}

func (r *Recorder) RenderList(element string, items []Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[element] = append([]Item(nil), items...)
}

func (r *Recorder) Alert(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, message)
}

func (r *Recorder) Navigate(page string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.location = page
}

// Text returns the current text of element
func (r *Recorder) Text(element string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.texts[element]
}

// Texts returns a copy of every element text
func (r *Recorder) Texts() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.texts))
	for k, v := range r.texts {
		out[k] = v
	}
	return out
}

// List returns the entries last rendered into element, and whether the
// element was rendered at all.
func (r *Recorder) List(element string) ([]Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, ok := r.lists[element]
	return append([]Item(nil), items...), ok
}

// Alerts returns the alerts in the order they were shown
func (r *Recorder) Alerts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.alerts...)
}

// Location returns the page navigated to, or "" if no navigation happened
func (r *Recorder) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location
}
