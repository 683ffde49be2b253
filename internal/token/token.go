package token

// Kind is the lexical classification of a token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	IDENT
	NUMBER
	STRING

	// Template literal pieces. A template without substitutions is a single
	// TEMPLATE; otherwise it is TEMPLATE_HEAD (TEMPLATE_MIDDLE)* TEMPLATE_TAIL.
	TEMPLATE
	TEMPLATE_HEAD
	TEMPLATE_MIDDLE
	TEMPLATE_TAIL

	// Delimiters
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMICOLON
	COMMA
	COLON
	DOT
	ELLIPSIS
	QUESTION
	ARROW

	// Assignment operators
	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	ASTERISK_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	POWER_ASSIGN
	AMPERSAND_ASSIGN
	PIPE_ASSIGN
	CARET_ASSIGN
	SHL_ASSIGN
	SHR_ASSIGN

	// Arithmetic
	PLUS
	MINUS
	ASTERISK
	SLASH
	PERCENT
	POWER
	INCREMENT
	DECREMENT
	BANG
	TILDE

	// Comparison
	EQ
	NOT_EQ
	STRICT_EQ
	STRICT_NOT_EQ
	LT
	GT
	LT_EQ
	GT_EQ

	// Bitwise and logical
	AMPERSAND
	PIPE
	CARET
	SHL
	SHR
	USHR
	AND
	OR
	NULLISH

	// Keywords
	BREAK
	CASE
	CATCH
	CONST
	CONTINUE
	DEFAULT
	DELETE
	DO
	ELSE
	ENUM
	EXPORT
	EXTENDS
	FALSE
	FINALLY
	FOR
	FUNCTION
	IF
	IMPORT
	IN
	INSTANCEOF
	INTERFACE
	LET
	NEW
	NULL
	RETURN
	SWITCH
	THROW
	TRUE
	TRY
	TYPEOF
	UNDEFINED
	VAR
	VOID
	WHILE

	kindCount
)

// Descriptor is the static classification record of a token kind.
// Descriptors are immutable and shared by every token of that kind.
type Descriptor struct {
	Label      string
	Precedence int // binary precedence, 0 when the token is not a binary operator
	Prefix     bool
	Postfix    bool
	Assign     bool
	Comparison bool
	Keyword    bool
}

// Binary precedence levels, lowest first.
const (
	LOWEST = iota
	PrecLogicalOr
	PrecLogicalAnd
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecEquality
	PrecRelational
	PrecShift
	PrecAdditive
	PrecMultiplicative
	PrecPower
)

var descriptors = [kindCount]Descriptor{
	ILLEGAL:         {Label: "ILLEGAL"},
	EOF:             {Label: "end of file"},
	IDENT:           {Label: "identifier"},
	NUMBER:          {Label: "number"},
	STRING:          {Label: "string"},
	TEMPLATE:        {Label: "template"},
	TEMPLATE_HEAD:   {Label: "template head"},
	TEMPLATE_MIDDLE: {Label: "template middle"},
	TEMPLATE_TAIL:   {Label: "template tail"},

	LPAREN:    {Label: "("},
	RPAREN:    {Label: ")"},
	LBRACE:    {Label: "{"},
	RBRACE:    {Label: "}"},
	LBRACKET:  {Label: "["},
	RBRACKET:  {Label: "]"},
	SEMICOLON: {Label: ";"},
	COMMA:     {Label: ","},
	COLON:     {Label: ":"},
	DOT:       {Label: "."},
	ELLIPSIS:  {Label: "..."},
	QUESTION:  {Label: "?"},
	ARROW:     {Label: "=>"},

	ASSIGN:           {Label: "=", Assign: true},
	PLUS_ASSIGN:      {Label: "+=", Assign: true},
	MINUS_ASSIGN:     {Label: "-=", Assign: true},
	ASTERISK_ASSIGN:  {Label: "*=", Assign: true},
	SLASH_ASSIGN:     {Label: "/=", Assign: true},
	PERCENT_ASSIGN:   {Label: "%=", Assign: true},
	POWER_ASSIGN:     {Label: "**=", Assign: true},
	AMPERSAND_ASSIGN: {Label: "&=", Assign: true},
	PIPE_ASSIGN:      {Label: "|=", Assign: true},
	CARET_ASSIGN:     {Label: "^=", Assign: true},
	SHL_ASSIGN:       {Label: "<<=", Assign: true},
	SHR_ASSIGN:       {Label: ">>=", Assign: true},

	PLUS:      {Label: "+", Precedence: PrecAdditive, Prefix: true},
	MINUS:     {Label: "-", Precedence: PrecAdditive, Prefix: true},
	ASTERISK:  {Label: "*", Precedence: PrecMultiplicative},
	SLASH:     {Label: "/", Precedence: PrecMultiplicative},
	PERCENT:   {Label: "%", Precedence: PrecMultiplicative},
	POWER:     {Label: "**", Precedence: PrecPower},
	INCREMENT: {Label: "++", Prefix: true, Postfix: true},
	DECREMENT: {Label: "--", Prefix: true, Postfix: true},
	BANG:      {Label: "!", Prefix: true},
	TILDE:     {Label: "~", Prefix: true},

	EQ:            {Label: "==", Precedence: PrecEquality, Comparison: true},
	NOT_EQ:        {Label: "!=", Precedence: PrecEquality, Comparison: true},
	STRICT_EQ:     {Label: "===", Precedence: PrecEquality, Comparison: true},
	STRICT_NOT_EQ: {Label: "!==", Precedence: PrecEquality, Comparison: true},
	LT:            {Label: "<", Precedence: PrecRelational, Comparison: true},
	GT:            {Label: ">", Precedence: PrecRelational, Comparison: true},
	LT_EQ:         {Label: "<=", Precedence: PrecRelational, Comparison: true},
	GT_EQ:         {Label: ">=", Precedence: PrecRelational, Comparison: true},

	AMPERSAND: {Label: "&", Precedence: PrecBitAnd},
	PIPE:      {Label: "|", Precedence: PrecBitOr},
	CARET:     {Label: "^", Precedence: PrecBitXor},
	SHL:       {Label: "<<", Precedence: PrecShift},
	SHR:       {Label: ">>", Precedence: PrecShift},
	USHR:      {Label: ">>>", Precedence: PrecShift},
	AND:       {Label: "&&", Precedence: PrecLogicalAnd},
	OR:        {Label: "||", Precedence: PrecLogicalOr},
	NULLISH:   {Label: "??", Precedence: PrecLogicalOr},

	BREAK:      {Label: "break", Keyword: true},
	CASE:       {Label: "case", Keyword: true},
	CATCH:      {Label: "catch", Keyword: true},
	CONST:      {Label: "const", Keyword: true},
	CONTINUE:   {Label: "continue", Keyword: true},
	DEFAULT:    {Label: "default", Keyword: true},
	DELETE:     {Label: "delete", Keyword: true, Prefix: true},
	DO:         {Label: "do", Keyword: true},
	ELSE:       {Label: "else", Keyword: true},
	ENUM:       {Label: "enum", Keyword: true},
	EXPORT:     {Label: "export", Keyword: true},
	EXTENDS:    {Label: "extends", Keyword: true},
	FALSE:      {Label: "false", Keyword: true},
	FINALLY:    {Label: "finally", Keyword: true},
	FOR:        {Label: "for", Keyword: true},
	FUNCTION:   {Label: "function", Keyword: true},
	IF:         {Label: "if", Keyword: true},
	IMPORT:     {Label: "import", Keyword: true},
	IN:         {Label: "in", Keyword: true, Precedence: PrecRelational, Comparison: true},
	INSTANCEOF: {Label: "instanceof", Keyword: true, Precedence: PrecRelational, Comparison: true},
	INTERFACE:  {Label: "interface", Keyword: true},
	LET:        {Label: "let", Keyword: true},
	NEW:        {Label: "new", Keyword: true},
	NULL:       {Label: "null", Keyword: true},
	RETURN:     {Label: "return", Keyword: true},
	SWITCH:     {Label: "switch", Keyword: true},
	THROW:      {Label: "throw", Keyword: true},
	TRUE:       {Label: "true", Keyword: true},
	TRY:        {Label: "try", Keyword: true},
	TYPEOF:     {Label: "typeof", Keyword: true, Prefix: true},
	UNDEFINED:  {Label: "undefined", Keyword: true},
	VAR:        {Label: "var", Keyword: true},
	VOID:       {Label: "void", Keyword: true, Prefix: true},
	WHILE:      {Label: "while", Keyword: true},
}

var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind)
	for k := Kind(0); k < kindCount; k++ {
		if descriptors[k].Keyword {
			keywords[descriptors[k].Label] = k
		}
	}
}

// LookupIdent returns the keyword kind for ident, or IDENT.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return IDENT
}

func (k Kind) Descriptor() *Descriptor {
	if k < 0 || k >= kindCount {
		return &descriptors[ILLEGAL]
	}
	return &descriptors[k]
}

func (k Kind) String() string { return k.Descriptor().Label }

func (k Kind) Precedence() int  { return k.Descriptor().Precedence }
func (k Kind) IsPrefix() bool   { return k.Descriptor().Prefix }
func (k Kind) IsPostfix() bool  { return k.Descriptor().Postfix }
func (k Kind) IsAssign() bool   { return k.Descriptor().Assign }
func (k Kind) IsKeyword() bool  { return k.Descriptor().Keyword }
func (k Kind) IsBinary() bool   { return k.Descriptor().Precedence > 0 }
func (k Kind) IsCompare() bool  { return k.Descriptor().Comparison }
func (k Kind) IsTemplate() bool { return k >= TEMPLATE && k <= TEMPLATE_TAIL }

// CompoundBase maps a compound assignment operator to its binary operator.
func (k Kind) CompoundBase() (Kind, bool) {
	switch k {
	case PLUS_ASSIGN:
		return PLUS, true
	case MINUS_ASSIGN:
		return MINUS, true
	case ASTERISK_ASSIGN:
		return ASTERISK, true
	case SLASH_ASSIGN:
		return SLASH, true
	case PERCENT_ASSIGN:
		return PERCENT, true
	case POWER_ASSIGN:
		return POWER, true
	case AMPERSAND_ASSIGN:
		return AMPERSAND, true
	case PIPE_ASSIGN:
		return PIPE, true
	case CARET_ASSIGN:
		return CARET, true
	case SHL_ASSIGN:
		return SHL, true
	case SHR_ASSIGN:
		return SHR, true
	}
	return ILLEGAL, false
}

// Token is one scanned lexical unit. Start and End are UTF-16 code unit
// offsets into the source.
type Token struct {
	Kind          Kind
	Value         string // cooked value: identifier name, string contents, number text
	Raw           string // source text of the token
	Start         int
	End           int
	NewlineBefore bool
}

// Span is a half-open [Start, End) range of UTF-16 code unit offsets.
type Span struct {
	Start int
	End   int
}

func (t Token) Span() Span { return Span{Start: t.Start, End: t.End} }

// Cover returns the smallest span containing both a and b.
func Cover(a, b Span) Span {
	s := a
	if b.Start < s.Start {
		s.Start = b.Start
	}
	if b.End > s.End {
		s.End = b.End
	}
	return s
}
