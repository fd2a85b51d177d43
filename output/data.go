package output

// Entry is one row of a report.
type Entry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Data maps extension-group labels to counts and remembers insertion order.
type Data struct {
	entries []Entry
	index   map[string]int
}

func NewData() *Data {
	return &Data{index: make(map[string]int)}
}

// Add appends label, or replaces its count in place if already present.
func (d *Data) Add(label string, count int) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[label]; ok {
		d.entries[i].Count = count
		return
	}
	d.index[label] = len(d.entries)
	d.entries = append(d.entries, Entry{Label: label, Count: count})
}

func (d *Data) Get(label string) (int, bool) {
	if d == nil {
		return 0, false
	}
	i, ok := d.index[label]
	if !ok {
		return 0, false
	}
	return d.entries[i].Count, true
}

// Entries returns a copy of the rows in insertion order.
func (d *Data) Entries() []Entry {
	if d == nil {
		return nil
	}
	return append([]Entry(nil), d.entries...)
}

func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

func (d *Data) Total() int {
	total := 0
	for _, e := range d.Entries() {
		total += e.Count
	}
	return total
}
