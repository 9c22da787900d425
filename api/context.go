package api

type contextKey int

//TransactionKey is the context key holding the *sql.Tx for the current request
const TransactionKey contextKey = 0
