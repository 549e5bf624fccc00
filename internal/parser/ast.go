package parser

import "github.com/leonardinius/golox/internal/token"

// Expr is a closed set of expression nodes; consumers dispatch with a type
// switch over the concrete *Expr* types below.
type Expr interface {
	exprNode()
}

// Stmt is a closed set of statement nodes.
type Stmt interface {
	stmtNode()
}

type (
	ExprAssign struct {
		Name  *token.Token
		Value Expr
	}

	ExprBinary struct {
		Left     Expr
		Operator *token.Token
		Right    Expr
	}

	ExprCall struct {
		Callee    Expr
		Paren     *token.Token
		Arguments []Expr
	}

	// ExprFunction is an anonymous function literal, fun (a, b) { ... }.
	ExprFunction struct {
		Keyword    *token.Token
		Parameters []*token.Token
		Body       []Stmt
	}

	ExprGrouping struct {
		Expression Expr
	}

	ExprLiteral struct {
		Value Value
	}

	// ExprLogical is kept apart from ExprBinary: the right operand is
	// evaluated only when the left one does not decide the result.
	ExprLogical struct {
		Left     Expr
		Operator *token.Token
		Right    Expr
	}

	ExprUnary struct {
		Operator *token.Token
		Right    Expr
	}

	ExprVariable struct {
		Name *token.Token
	}
)

type (
	StmtBlock struct {
		Statements []Stmt
	}

	StmtExpression struct {
		Expression Expr
	}

	StmtFunction struct {
		Name       *token.Token
		Parameters []*token.Token
		Body       []Stmt
	}

	StmtIf struct {
		Condition  Expr
		ThenBranch Stmt
		ElseBranch Stmt
	}

	StmtPrint struct {
		Expression Expr
	}

	StmtReturn struct {
		Keyword *token.Token
		Value   Expr
	}

	StmtVar struct {
		Name        *token.Token
		Initializer Expr
	}

	StmtWhile struct {
		Condition Expr
		Body      Stmt
	}
)

func (*ExprAssign) exprNode()   {}
func (*ExprBinary) exprNode()   {}
func (*ExprCall) exprNode()     {}
func (*ExprFunction) exprNode() {}
func (*ExprGrouping) exprNode() {}
func (*ExprLiteral) exprNode()  {}
func (*ExprLogical) exprNode()  {}
func (*ExprUnary) exprNode()    {}
func (*ExprVariable) exprNode() {}

func (*StmtBlock) stmtNode()      {}
func (*StmtExpression) stmtNode() {}
func (*StmtFunction) stmtNode()   {}
func (*StmtIf) stmtNode()         {}
func (*StmtPrint) stmtNode()      {}
func (*StmtReturn) stmtNode()     {}
func (*StmtVar) stmtNode()        {}
func (*StmtWhile) stmtNode()      {}

var (
	_ Expr = (*ExprAssign)(nil)
	_ Expr = (*ExprBinary)(nil)
	_ Expr = (*ExprCall)(nil)
	_ Expr = (*ExprFunction)(nil)
	_ Expr = (*ExprGrouping)(nil)
	_ Expr = (*ExprLiteral)(nil)
	_ Expr = (*ExprLogical)(nil)
	_ Expr = (*ExprUnary)(nil)
	_ Expr = (*ExprVariable)(nil)

	_ Stmt = (*StmtBlock)(nil)
	_ Stmt = (*StmtExpression)(nil)
	_ Stmt = (*StmtFunction)(nil)
	_ Stmt = (*StmtIf)(nil)
	_ Stmt = (*StmtPrint)(nil)
	_ Stmt = (*StmtReturn)(nil)
	_ Stmt = (*StmtVar)(nil)
	_ Stmt = (*StmtWhile)(nil)
)
