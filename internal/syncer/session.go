package syncer

// Session 已认证的会话上下文
//
// 在构造同步器时显式传入，操作过程中不再隐式获取当前用户。
type Session struct {
	UserID uint
	Email  string
}

// Valid 会话是否携带已认证用户
func (s Session) Valid() bool {
	return s.UserID != 0
}
