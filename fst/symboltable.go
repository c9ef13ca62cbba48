package fst

// SymbolTable is the optional string<->Label mapping an Fst may carry on
// its input or output side: a paired
// id2str/str2id table with copy-on-write sharing, so a composed or
// determinized Fst can reuse an operand's table without risking a mutation
// through one handle corrupting another's view.
type SymbolTable struct {
	name   string
	id2str []string
	str2id map[string]Label
}

// NewSymbolTable creates an empty table with EpsLabel pre-bound to "<eps>",
// matching OpenFst's convention that symbol 0 always names epsilon.
func NewSymbolTable(name string) *SymbolTable {
	return &SymbolTable{
		name:   name,
		id2str: []string{"<eps>"},
		str2id: map[string]Label{"<eps>": EpsLabel},
	}
}

func (t *SymbolTable) Name() string { return t.name }

// Copy returns a new SymbolTable that can be mutated without affecting t.
func (t *SymbolTable) Copy() *SymbolTable {
	id2str := make([]string, len(t.id2str))
	copy(id2str, t.id2str)
	str2id := make(map[string]Label, len(t.str2id))
	for k, v := range t.str2id {
		str2id[k] = v
	}
	return &SymbolTable{name: t.name, id2str: id2str, str2id: str2id}
}

// Find returns the symbol bound to l, or ("", false) if none.
func (t *SymbolTable) Find(l Label) (string, bool) {
	if int(l) >= len(t.id2str) {
		return "", false
	}
	return t.id2str[l], true
}

// FindLabel returns the label bound to sym, or (NoLabel, false) if none.
func (t *SymbolTable) FindLabel(sym string) (Label, bool) {
	l, ok := t.str2id[sym]
	return l, ok
}

// AddSymbol binds sym to a fresh label if not already present, and returns
// its label either way.
func (t *SymbolTable) AddSymbol(sym string) Label {
	if l, ok := t.str2id[sym]; ok {
		return l
	}
	l := Label(len(t.id2str))
	t.id2str = append(t.id2str, sym)
	t.str2id[sym] = l
	return l
}

// NumSymbols returns the number of bound symbols, including epsilon.
func (t *SymbolTable) NumSymbols() int { return len(t.id2str) }
