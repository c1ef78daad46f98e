package lexer

// keywords holds the reserved words of the subset, including reserved-but
// unused ones, so they never lex as plain identifiers.
var keywords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "crate": true,
	"else": true, "enum": true, "extern": true, "false": true, "fn": true,
	"for": true, "if": true, "impl": true, "in": true, "let": true,
	"loop": true, "match": true, "mod": true, "move": true, "mut": true,
	"pub": true, "ref": true, "return": true, "self": true, "Self": true,
	"static": true, "struct": true, "super": true, "trait": true, "true": true,
	"type": true, "unsafe": true, "use": true, "where": true, "while": true,
	"async": true, "await": true, "dyn": true, "abstract": true, "become": true,
	"box": true, "do": true, "final": true, "macro": true, "override": true,
	"priv": true, "try": true, "typeof": true, "unsized": true, "virtual": true,
	"yield": true,
}

// operators holds single- and multi-character operators. Longest match wins.
var operators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"=": true, "==": true, "!": true, "!=": true, "<": true, ">": true,
	"<=": true, ">=": true, "&": true, "&&": true, "|": true, "||": true,
	"->": true,
}

// punctuations holds delimiter tokens. "::" and ".." are matched before
// their single-character prefixes.
var punctuations = map[string]bool{
	"{": true, "}": true, "(": true, ")": true, "[": true, "]": true,
	",": true, ":": true, "::": true, ".": true, "..": true,
}
