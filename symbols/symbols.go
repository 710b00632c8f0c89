// Package symbols maps markup command names to the glyphs they stand for.
package symbols

import (
	"errors"
	"fmt"
	"sort"

	"github.com/maruel/natural"
)

// ErrNotFound is returned for commands absent from the table.
var ErrNotFound = errors.New("symbol not found")

// Table is an immutable command name to glyph mapping.
type Table struct {
	glyphs map[string]string
}

// New builds table from name/glyph pairs, later pairs win.
func New(pairs map[string]string) *Table {
	t := &Table{glyphs: make(map[string]string, len(pairs))}
	for k, v := range pairs {
		t.glyphs[k] = v
	}
	return t
}

var defaultTable = New(builtin)

// Default returns table with all supported commands.
func Default() *Table {
	return defaultTable
}

// Lookup returns glyph text for command name.
func (t *Table) Lookup(name string) (string, error) {
	if g, ok := t.glyphs[name]; ok {
		return g, nil
	}
	return "", fmt.Errorf("command '%s': %w", name, ErrNotFound)
}

// Len returns number of known commands.
func (t *Table) Len() int {
	return len(t.glyphs)
}

// Names returns all known command names in natural order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.glyphs))
	for k := range t.glyphs {
		names = append(names, k)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

var builtin = map[string]string{
	// greek lower case
	"alpha":      "α",
	"beta":       "β",
	"gamma":      "γ",
	"delta":      "δ",
	"epsilon":    "ϵ",
	"varepsilon": "ε",
	"zeta":       "ζ",
	"eta":        "η",
	"theta":      "θ",
	"vartheta":   "ϑ",
	"iota":       "ι",
	"kappa":      "κ",
	"lambda":     "λ",
	"mu":         "μ",
	"nu":         "ν",
	"xi":         "ξ",
	"omicron":    "ο",
	"pi":         "π",
	"varpi":      "ϖ",
	"rho":        "ρ",
	"varrho":     "ϱ",
	"sigma":      "σ",
	"varsigma":   "ς",
	"tau":        "τ",
	"upsilon":    "υ",
	"phi":        "ϕ",
	"varphi":     "φ",
	"chi":        "χ",
	"psi":        "ψ",
	"omega":      "ω",

	// greek upper case
	"Gamma":   "Γ",
	"Delta":   "Δ",
	"Theta":   "Θ",
	"Lambda":  "Λ",
	"Xi":      "Ξ",
	"Pi":      "Π",
	"Sigma":   "Σ",
	"Upsilon": "Υ",
	"Phi":     "Φ",
	"Psi":     "Ψ",
	"Omega":   "Ω",

	// big operators
	"sum":    "∑",
	"prod":   "∏",
	"coprod": "∐",
	"int":    "∫",
	"iint":   "∬",
	"iiint":  "∭",
	"oint":   "∮",
	"bigcup": "⋃",
	"bigcap": "⋂",

	// binary operators
	"pm":       "±",
	"mp":       "∓",
	"times":    "×",
	"div":      "÷",
	"cdot":     "⋅",
	"ast":      "∗",
	"star":     "⋆",
	"circ":     "∘",
	"bullet":   "∙",
	"oplus":    "⊕",
	"ominus":   "⊖",
	"otimes":   "⊗",
	"oslash":   "⊘",
	"odot":     "⊙",
	"cup":      "∪",
	"cap":      "∩",
	"setminus": "∖",
	"wedge":    "∧",
	"land":     "∧",
	"vee":      "∨",
	"lor":      "∨",

	// relations
	"leq":       "≤",
	"le":        "≤",
	"geq":       "≥",
	"ge":        "≥",
	"neq":       "≠",
	"ne":        "≠",
	"ll":        "≪",
	"gg":        "≫",
	"approx":    "≈",
	"equiv":     "≡",
	"sim":       "∼",
	"simeq":     "≃",
	"cong":      "≅",
	"propto":    "∝",
	"in":        "∈",
	"notin":     "∉",
	"ni":        "∋",
	"subset":    "⊂",
	"supset":    "⊃",
	"subseteq":  "⊆",
	"supseteq":  "⊇",
	"perp":      "⊥",
	"parallel":  "∥",
	"mid":       "∣",
	"vdash":     "⊢",
	"models":    "⊨",
	"prec":      "≺",
	"succ":      "≻",
	"doteq":     "≐",
	"triangleq": "≜",

	// arrows
	"leftarrow":          "←",
	"gets":               "←",
	"rightarrow":         "→",
	"to":                 "→",
	"uparrow":            "↑",
	"downarrow":          "↓",
	"leftrightarrow":     "↔",
	"updownarrow":        "↕",
	"Leftarrow":          "⇐",
	"Rightarrow":         "⇒",
	"Uparrow":            "⇑",
	"Downarrow":          "⇓",
	"Leftrightarrow":     "⇔",
	"iff":                "⇔",
	"implies":            "⇒",
	"mapsto":             "↦",
	"longrightarrow":     "⟶",
	"longleftarrow":      "⟵",
	"longleftrightarrow": "⟷",
	"nearrow":            "↗",
	"searrow":            "↘",
	"swarrow":            "↙",
	"nwarrow":            "↖",

	// logic and sets
	"forall":     "∀",
	"exists":     "∃",
	"nexists":    "∄",
	"neg":        "¬",
	"lnot":       "¬",
	"emptyset":   "∅",
	"varnothing": "∅",
	"therefore":  "∴",
	"because":    "∵",

	// miscellaneous
	"infty":       "∞",
	"partial":     "∂",
	"nabla":       "∇",
	"hbar":        "ℏ",
	"ell":         "ℓ",
	"Re":          "ℜ",
	"Im":          "ℑ",
	"aleph":       "ℵ",
	"wp":          "℘",
	"angle":       "∠",
	"degree":      "°",
	"prime":       "′",
	"surd":        "√",
	"ldots":       "…",
	"cdots":       "⋯",
	"vdots":       "⋮",
	"ddots":       "⋱",
	"langle":      "⟨",
	"rangle":      "⟩",
	"lceil":       "⌈",
	"rceil":       "⌉",
	"lfloor":      "⌊",
	"rfloor":      "⌋",
	"vert":        "|",
	"Vert":        "‖",
	"backslash":   "\\",
	"top":         "⊤",
	"bot":         "⊥",
	"triangle":    "△",
	"square":      "□",
	"diamond":     "⋄",
	"clubsuit":    "♣",
	"heartsuit":   "♡",
	"spadesuit":   "♠",
	"diamondsuit": "♢",
}
