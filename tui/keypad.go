package tui

// keypadKey is one button on the virtual keyboard. Pressing it appends
// insert to the input line; clear keys empty the line instead.
type keypadKey struct {
	label  string
	insert string
	clear  bool
}

// keypadRows lays out the virtual keyboard. Labels show the rendered
// form, inserts use the parser's input syntax.
var keypadRows = [][]keypadKey{
	{
		{label: "x²", insert: "**2"},
		{label: "x³", insert: "**3"},
		{label: "xⁿ", insert: "**"},
		{label: "√", insert: "sqrt("},
	},
	{
		{label: "sin", insert: "sin("},
		{label: "cos", insert: "cos("},
		{label: "tan", insert: "tan("},
		{label: "eˣ", insert: "exp("},
	},
	{
		{label: "π", insert: "pi"},
		{label: "+", insert: " + "},
		{label: "-", insert: " - "},
		{label: "*", insert: " * "},
	},
	{
		{label: "/", insert: " / "},
		{label: "(", insert: "("},
		{label: ")", insert: ")"},
		{label: "Clear", clear: true},
	},
}

// keypad tracks the selected button.
type keypad struct {
	row int
	col int
}

func (k *keypad) moveUp() {
	if k.row > 0 {
		k.row--
	}
}

func (k *keypad) moveDown() {
	if k.row < len(keypadRows)-1 {
		k.row++
	}
}

func (k *keypad) moveLeft() {
	if k.col > 0 {
		k.col--
	}
}

func (k *keypad) moveRight() {
	if k.col < len(keypadRows[k.row])-1 {
		k.col++
	}
}

func (k *keypad) selected() keypadKey {
	return keypadRows[k.row][k.col]
}
