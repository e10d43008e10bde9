package domain

// Identity JWT 解出来的请求方身份
type Identity struct {
	UserID string
	Role   string
}

// 授权规则：纯函数，无 I/O

func CanModifyPost(id Identity, p *Post) bool {
	return id.UserID != "" && id.UserID == p.OwnerID
}

func CanDeletePost(id Identity, p *Post) bool {
	return CanModifyPost(id, p) || id.Role == RoleAdmin
}

func CanListUsers(id Identity) bool {
	return id.Role == RoleAdmin
}
