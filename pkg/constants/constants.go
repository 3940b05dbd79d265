package constants

type ContextKey string

const (
	TxKey     ContextKey = "tx"
	PoolKey   ContextKey = "pool"
	UserKey   ContextKey = "user"
	LoggerKey ContextKey = "logger"
	ParamsKey ContextKey = "params"
)
