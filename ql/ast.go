package ql

// Statement is the compiled form of one BlueQL query, consumed by the
// executor. The concrete types are the DDL and DML nodes of this
// package; the interface is sealed.
type Statement interface {
	stmt()
}

// UseStmt switches the session to a space or model.
type UseStmt struct {
	Entity Entity
}

func (UseStmt) stmt() {}
