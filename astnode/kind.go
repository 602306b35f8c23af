package astnode

// Kind is an AST node's type tag. The set is closed for the kinds the
// rewriter in package patch knows specific rules for; anything else
// round-trips through Unknown with the original label preserved on the
// node for diagnostics, per the string-to-enum conversion the tree
// builder performs once at build time.
type Kind string

const (
	Unknown Kind = ""

	FunctionDecl       Kind = "FunctionDecl"
	IfStmt             Kind = "IfStmt"
	CompoundStmt       Kind = "CompoundStmt"
	BinaryOperator     Kind = "BinaryOperator"
	CallExpr           Kind = "CallExpr"
	MemberExpr         Kind = "MemberExpr"
	VarDecl            Kind = "VarDecl"
	ParmVarDecl        Kind = "ParmVarDecl"
	FieldDecl          Kind = "FieldDecl"
	DeclRefExpr        Kind = "DeclRefExpr"
	ArraySubscriptExpr Kind = "ArraySubscriptExpr"
	InitListExpr       Kind = "InitListExpr"
	ParenExpr          Kind = "ParenExpr"
	CStyleCastExpr     Kind = "CStyleCastExpr"
	ReturnStmt         Kind = "ReturnStmt"
	LabelStmt          Kind = "LabelStmt"
	GotoStmt           Kind = "GotoStmt"
	DeclStmt           Kind = "DeclStmt"
	Macro              Kind = "Macro"
	EnumDecl           Kind = "EnumDecl"
	EnumConstantDecl   Kind = "EnumConstantDecl"
	RecordDecl         Kind = "RecordDecl"
	StringLiteral      Kind = "StringLiteral"
	IntegerLiteral     Kind = "IntegerLiteral"
	TypedefDecl        Kind = "TypedefDecl"
	FileScopeAsmDecl   Kind = "FileScopeAsmDecl"
	CaseStmt           Kind = "CaseStmt"
)

var knownKinds = map[string]Kind{
	string(FunctionDecl):       FunctionDecl,
	string(IfStmt):             IfStmt,
	string(CompoundStmt):       CompoundStmt,
	string(BinaryOperator):     BinaryOperator,
	string(CallExpr):           CallExpr,
	string(MemberExpr):         MemberExpr,
	string(VarDecl):            VarDecl,
	string(ParmVarDecl):        ParmVarDecl,
	string(FieldDecl):          FieldDecl,
	string(DeclRefExpr):        DeclRefExpr,
	string(ArraySubscriptExpr): ArraySubscriptExpr,
	string(InitListExpr):       InitListExpr,
	string(ParenExpr):          ParenExpr,
	string(CStyleCastExpr):     CStyleCastExpr,
	string(ReturnStmt):         ReturnStmt,
	string(LabelStmt):          LabelStmt,
	string(GotoStmt):           GotoStmt,
	string(DeclStmt):           DeclStmt,
	string(Macro):              Macro,
	string(EnumDecl):           EnumDecl,
	string(EnumConstantDecl):   EnumConstantDecl,
	string(RecordDecl):         RecordDecl,
	string(StringLiteral):      StringLiteral,
	string(IntegerLiteral):     IntegerLiteral,
	string(TypedefDecl):        TypedefDecl,
	string(FileScopeAsmDecl):   FileScopeAsmDecl,
	string(CaseStmt):           CaseStmt,
}

// ParseKind converts a textual kind label (as it appears in a script
// line or a JSON dump) into the internal enum. Labels outside the
// closed set come back as Unknown; callers that need the original text
// should keep it separately (Node.RawKind does this for tree nodes).
func ParseKind(label string) Kind {
	if k, ok := knownKinds[label]; ok {
		return k
	}
	return Unknown
}
