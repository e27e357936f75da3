package handler

type ContextKey string

var (
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	FranchiseCtxKey ContextKey = "franchise"
	MyInfoCtxKey    ContextKey = "my_info"
	ShiftCtxKey     ContextKey = "shift"
	CourierCtxKey   ContextKey = "courier"
)
