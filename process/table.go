package process

// Table is the id-keyed reference table built during the parse pass. All
// reference resolution is deferred until projection, so blocks may point at
// blocks that appear later in the document.
type Table struct {
	records map[string]*Record
	order   []string
	dupes   int
}

func NewTable() *Table {
	return &Table{records: map[string]*Record{}}
}

// Register inserts a record by id. A repeated id replaces the earlier record
// and reports true; document order keeps the id's first position.
func (t *Table) Register(rec *Record) bool {
	_, exists := t.records[rec.Id]
	if !exists {
		t.order = append(t.order, rec.Id)
	} else {
		t.dupes++
	}
	t.records[rec.Id] = rec
	return exists
}

// Resolve looks a reference up. A missing id is not an error; the relation
// degrades to absent in the output.
func (t *Table) Resolve(ref Reference) (*Record, bool) {
	rec, ok := t.records[ref.Id]
	return rec, ok
}

func (t *Table) Get(id string) (*Record, bool) {
	rec, ok := t.records[id]
	return rec, ok
}

// Records returns the table's contents in document order.
func (t *Table) Records() []*Record {
	list := make([]*Record, 0, len(t.order))
	for _, id := range t.order {
		list = append(list, t.records[id])
	}
	return list
}

func (t *Table) Duplicates() int {
	return t.dupes
}

func (t *Table) Len() int {
	return len(t.records)
}
